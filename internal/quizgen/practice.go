package quizgen

import (
	"bufio"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/abhisek/stemcoach/internal/llm"
)

// practiceBank is a fixed set of mixed STEM questions used when no LLM is
// available. They are not specific to the requested topic.
var practiceBank = []Question{
	{
		Question:     "What is the SI unit of force?",
		Options:      []string{"Joule", "Newton", "Watt", "Pascal"},
		CorrectIndex: 1,
		Explanation:  "One newton is the force that accelerates 1 kg at 1 m/s^2.",
	},
	{
		Question:     "What is the derivative of x^3?",
		Options:      []string{"x^2", "3x^2", "3x", "x^4 / 4"},
		CorrectIndex: 1,
		Explanation:  "The power rule gives d/dx x^n = n x^(n-1), so 3x^2.",
	},
	{
		Question:     "A solution with pH 3 is",
		Options:      []string{"strongly basic", "neutral", "acidic", "weakly basic"},
		CorrectIndex: 2,
		Explanation:  "pH below 7 means a higher H+ concentration than pure water, so acidic.",
	},
	{
		Question:     "What is the worst-case time complexity of binary search on n sorted items?",
		Options:      []string{"O(1)", "O(log n)", "O(n)", "O(n log n)"},
		CorrectIndex: 1,
		Explanation:  "Each comparison halves the remaining range, so about log2(n) steps.",
	},
	{
		Question:     "A car accelerates uniformly from rest at 2 m/s^2. Its speed after 5 s is",
		Options:      []string{"2.5 m/s", "7 m/s", "10 m/s", "25 m/s"},
		CorrectIndex: 2,
		Explanation:  "v = u + at = 0 + 2 * 5 = 10 m/s.",
	},
	{
		Question:     "What is the value of sin(30 degrees)?",
		Options:      []string{"1/2", "sqrt(3)/2", "1", "sqrt(2)/2"},
		CorrectIndex: 0,
		Explanation:  "In a 30-60-90 triangle the side opposite 30 degrees is half the hypotenuse.",
	},
	{
		Question:     "How many moles are in 18 g of water (H2O)?",
		Options:      []string{"0.5", "1", "2", "18"},
		CorrectIndex: 1,
		Explanation:  "The molar mass of water is about 18 g/mol, so 18 g is one mole.",
	},
	{
		Question:     "Which data structure serves items in first-in, first-out order?",
		Options:      []string{"Stack", "Queue", "Binary tree", "Hash map"},
		CorrectIndex: 1,
		Explanation:  "A queue removes items in the order they were added.",
	},
	{
		Question:     "Two 4 ohm resistors in parallel have an equivalent resistance of",
		Options:      []string{"1 ohm", "2 ohm", "4 ohm", "8 ohm"},
		CorrectIndex: 1,
		Explanation:  "1/R = 1/4 + 1/4 = 1/2, so R = 2 ohm.",
	},
	{
		Question:     "The integral of 1/x dx is",
		Options:      []string{"ln|x| + C", "x^2 / 2 + C", "-1/x^2 + C", "e^x + C"},
		CorrectIndex: 0,
		Explanation:  "d/dx ln|x| = 1/x.",
	},
}

// PracticeResponse answers a quiz request without an LLM: it reads the
// topic and question count from the request and returns that many
// questions from a fixed mixed STEM bank. It is the responder of the
// "mock" provider, so the app stays usable offline.
func PracticeResponse(req llm.Request) llm.MockResponse {
	if req.Schema == nil || req.Schema.Name != QuizSchema.Name {
		return llm.MockResponse{Err: fmt.Errorf("practice responder only answers %s requests", QuizSchema.Name)}
	}

	in := Input{Topic: "Mixed practice"}
	for _, m := range req.Messages {
		if m.Role == llm.RoleUser {
			in = parseUserMessage(m.Content, in)
		}
	}

	q := PracticeQuiz(in.Topic, in.count())
	raw, err := json.Marshal(q)
	if err != nil {
		return llm.MockResponse{Err: err}
	}
	return llm.MockResponse{Content: raw}
}

// PracticeQuiz picks count questions from the practice bank, starting at
// an offset derived from topic so different topics start differently.
func PracticeQuiz(topic string, count int) Quiz {
	count = Input{Count: count}.count()

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(topic)))
	start := int(h.Sum32() % uint32(len(practiceBank)))

	q := Quiz{
		Title: fmt.Sprintf("%s: practice set", topic),
		Topic: topic,
	}
	for i := 0; i < count; i++ {
		qq := practiceBank[(start+i)%len(practiceBank)]
		qq.ID = fmt.Sprintf("q%d", i+1)
		qq.Options = append([]string(nil), qq.Options...)
		q.Questions = append(q.Questions, qq)
	}
	return q
}

// parseUserMessage reads the "Topic:" and "Questions:" lines written by
// buildUserMessage.
func parseUserMessage(msg string, in Input) Input {
	sc := bufio.NewScanner(strings.NewReader(msg))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Topic":
			if value != "" {
				in.Topic = value
			}
		case "Questions":
			if n, err := strconv.Atoi(value); err == nil {
				in.Count = n
			}
		}
	}
	return in
}
