package services

import (
	"sort"
	"strings"

	"jobboard/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Hàm chuẩn hóa chuỗi: bỏ dấu, chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// tokens tách chuỗi đã chuẩn hóa thành các từ
func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '#')
	})
}

// bestTokenSimilarity trả về độ tương đồng cao nhất giữa word và các từ trong text
func bestTokenSimilarity(word string, words []string) float64 {
	best := 0.0
	for _, w := range words {
		if sim := calculateSimilarity(word, w); sim > best {
			best = sim
		}
	}
	return best
}

const similarityThreshold = 0.75

// scoreJob tính điểm phù hợp của job với câu truy vấn đã chuẩn hóa
func scoreJob(query string, job models.Job) int {
	title := normalizeInput(job.Title)
	if query == "" {
		return 0
	}

	score := 0
	if strings.Contains(title, query) {
		score += 30
	}

	titleWords := tokens(title)
	locationWords := tokens(normalizeInput(job.Location))
	descWords := tokens(normalizeInput(job.Description))
	skillWords := make([]string, 0, len(job.Skills))
	for _, s := range job.Skills {
		skillWords = append(skillWords, tokens(normalizeInput(s))...)
	}
	category := normalizeInput(job.Category)

	for _, word := range tokens(query) {
		if sim := bestTokenSimilarity(word, titleWords); sim >= similarityThreshold {
			score += int(10 * sim)
		}
		if sim := bestTokenSimilarity(word, skillWords); sim >= similarityThreshold {
			score += int(8 * sim)
		}
		if sim := bestTokenSimilarity(word, locationWords); sim >= similarityThreshold {
			score += int(6 * sim)
		}
		if word == category || strings.Contains(category, word) {
			score += 5
		}
		if len(word) > 2 && containsWord(descWords, word) {
			score += 2
		}
	}
	return score
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

type scoredJob struct {
	job   models.Job
	score int
}

// rankJobs lọc các job có điểm > 0 và sắp xếp giảm dần theo điểm, giữ thứ tự gốc khi bằng điểm
func rankJobs(query string, jobs []models.Job) []models.Job {
	q := normalizeInput(query)
	scored := make([]scoredJob, 0, len(jobs))
	for _, j := range jobs {
		if s := scoreJob(q, j); s > 0 {
			scored = append(scored, scoredJob{job: j, score: s})
		}
	}
	sort.SliceStable(scored, func(i, k int) bool {
		return scored[i].score > scored[k].score
	})

	out := make([]models.Job, len(scored))
	for i, s := range scored {
		out[i] = s.job
	}
	return out
}

// suggestQuery đưa ra gợi ý "có phải bạn muốn tìm" dựa trên tiêu đề và kỹ năng hiện có
func suggestQuery(query string, jobs []models.Job) string {
	q := normalizeInput(query)
	if q == "" || len(jobs) == 0 {
		return ""
	}

	seen := make(map[string]bool)
	var vocabulary []string
	add := func(s string) {
		if s = normalizeInput(s); s != "" && !seen[s] {
			seen[s] = true
			vocabulary = append(vocabulary, s)
		}
	}
	for _, j := range jobs {
		add(j.Title)
		for _, s := range j.Skills {
			add(s)
		}
	}

	cm := closestmatch.New(vocabulary, []int{2, 3})
	best := cm.Closest(q)
	if best == "" || best == q {
		return ""
	}
	return best
}
