package tools

import "github.com/abhisek/stemcoach/internal/topicpack"

// TopicPackInput is the getStemTopicPack tool input.
type TopicPackInput struct {
	Subject topicpack.Subject `json:"subject"`
}

// TopicPack is the getStemTopicPack tool output.
type TopicPack struct {
	Subject string   `json:"subject"`
	Topics  []string `json:"topics"`
}

// GetStemTopicPack returns the curriculum topics for subject. An unknown
// subject yields an empty list.
func GetStemTopicPack(subject topicpack.Subject) TopicPack {
	topics := topicpack.Topics(subject)
	if topics == nil {
		topics = []string{}
	}
	return TopicPack{Subject: string(subject), Topics: topics}
}
