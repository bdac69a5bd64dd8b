package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidMapping = errors.New("invalid topic mapping")

// TopicMapping is the many-to-many bridge between external item bank topic
// names and internal content category codes. It is immutable once built.
type TopicMapping struct {
	byTopic map[string][]string
	byCode  map[string][]string
}

// LoadTopicMapping reads a YAML table of `topic: [code, ...]`.
func LoadTopicMapping(path string) (*TopicMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topic mapping %s: %w", path, err)
	}
	m, err := ParseTopicMapping(data)
	if err != nil {
		return nil, fmt.Errorf("parse topic mapping %s: %w", path, err)
	}
	return m, nil
}

func ParseTopicMapping(data []byte) (*TopicMapping, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no topics defined", ErrInvalidMapping)
	}
	return NewTopicMapping(raw)
}

func NewTopicMapping(raw map[string][]string) (*TopicMapping, error) {
	m := &TopicMapping{
		byTopic: make(map[string][]string, len(raw)),
		byCode:  make(map[string][]string),
	}
	for topic, codes := range raw {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			return nil, fmt.Errorf("%w: empty topic name", ErrInvalidMapping)
		}
		if len(codes) == 0 {
			return nil, fmt.Errorf("%w: topic %q maps to no categories", ErrInvalidMapping, topic)
		}
		for _, code := range codes {
			code = strings.TrimSpace(code)
			if code == "" {
				return nil, fmt.Errorf("%w: topic %q has an empty category code", ErrInvalidMapping, topic)
			}
			if slices.Contains(m.byTopic[topic], code) {
				continue
			}
			m.byTopic[topic] = append(m.byTopic[topic], code)
			m.byCode[code] = append(m.byCode[code], topic)
		}
	}
	// Sorted so a seeded pick over the candidates is reproducible.
	for code := range m.byCode {
		slices.Sort(m.byCode[code])
	}
	for topic := range m.byTopic {
		slices.Sort(m.byTopic[topic])
	}
	return m, nil
}

// TopicsFor returns the external topics mapped to a content category code.
func (m *TopicMapping) TopicsFor(code string) []string {
	return slices.Clone(m.byCode[code])
}

// CodesFor returns the content category codes a topic maps to.
func (m *TopicMapping) CodesFor(topic string) []string {
	return slices.Clone(m.byTopic[topic])
}

func (m *TopicMapping) Len() int {
	return len(m.byTopic)
}
