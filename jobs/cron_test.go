package jobs

import (
	"context"
	"errors"
	"testing"

	"jobboard/services/logger"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduler struct {
	specs   []string
	funcs   []func()
	started bool
	failOn  string
}

func (f *fakeScheduler) AddFunc(spec string, cmd func()) (cron.EntryID, error) {
	if spec == f.failOn {
		return 0, errors.New("bad spec")
	}
	f.specs = append(f.specs, spec)
	f.funcs = append(f.funcs, cmd)
	return cron.EntryID(len(f.funcs)), nil
}

func (f *fakeScheduler) Start() { f.started = true }

type fakeCloser struct {
	calls int
	err   error
}

func (f *fakeCloser) CloseExpired(ctx context.Context) (int, error) {
	f.calls++
	return 2, f.err
}

type fakeArchiver struct {
	retention []int
}

func (f *fakeArchiver) ArchiveViews(ctx context.Context, retentionDays int) (int64, error) {
	f.retention = append(f.retention, retentionDays)
	return 5, nil
}

func TestInitCronJobs(t *testing.T) {
	s := &fakeScheduler{}
	closer := &fakeCloser{err: errors.New("db down")}
	archiver := &fakeArchiver{}

	require.NoError(t, InitCronJobs(s, closer, archiver, 90, logger.Nop{}))
	assert.True(t, s.started)
	assert.Equal(t, []string{"0 0 * * *", "30 0 * * *"}, s.specs)

	// lỗi của job chỉ được log
	for _, fn := range s.funcs {
		fn()
	}
	assert.Equal(t, 1, closer.calls)
	assert.Equal(t, []int{90}, archiver.retention)
}

func TestInitCronJobsZeroRetentionSkipsArchive(t *testing.T) {
	s := &fakeScheduler{}
	archiver := &fakeArchiver{}

	require.NoError(t, InitCronJobs(s, &fakeCloser{}, archiver, 0, logger.Nop{}))
	s.funcs[1]()
	assert.Empty(t, archiver.retention)
}

func TestInitCronJobsAddFuncError(t *testing.T) {
	s := &fakeScheduler{failOn: "30 0 * * *"}

	err := InitCronJobs(s, &fakeCloser{}, &fakeArchiver{}, 90, logger.Nop{})
	assert.Error(t, err)
	assert.False(t, s.started)
}

func TestCronSpecsParse(t *testing.T) {
	for _, spec := range []string{closeExpiredSpec, archiveViewsSpec} {
		_, err := cron.ParseStandard(spec)
		assert.NoError(t, err, spec)
	}
}
