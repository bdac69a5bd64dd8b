package resolver

import (
	"fmt"

	"github.com/examprep/selection/internal/metrics"
	"github.com/examprep/selection/internal/models"
)

// ResolveTopics picks one external topic per selected category. A topic is
// used at most once per pass even when several categories map to it, and
// topics in alreadyChosen are never picked. Categories left without an
// unclaimed topic contribute no task.
func (r *Resolver) ResolveTopics(categories []models.Category, alreadyChosen []string) []models.Task {
	return r.FillTopics(categories, alreadyChosen, len(categories))
}

// FillTopics walks ranked categories in order with the same dedup rules as
// ResolveTopics and stops once want tasks exist. Skipped categories leave
// room for the next one in the ranking.
func (r *Resolver) FillTopics(ranked []models.Category, alreadyChosen []string, want int) []models.Task {
	if want <= 0 {
		return []models.Task{}
	}
	rng := r.source.New()

	claimed := make(map[string]bool, len(alreadyChosen)+want)
	for _, topic := range alreadyChosen {
		claimed[topic] = true
	}

	tasks := make([]models.Task, 0, min(want, len(ranked)))
	for _, c := range ranked {
		if len(tasks) == want {
			break
		}

		var candidates []string
		for _, topic := range r.topics.TopicsFor(c.ContentCategory) {
			if !claimed[topic] {
				candidates = append(candidates, topic)
			}
		}
		if len(candidates) == 0 {
			metrics.TopicsSkipped.Inc()
			continue
		}

		topic := candidates[rng.IntN(len(candidates))]
		claimed[topic] = true
		tasks = append(tasks, models.Task{
			Topic:           topic,
			Label:           TaskLabel(r.taskItemCount, topic),
			CategoryID:      c.ID,
			ContentCategory: c.ContentCategory,
			ItemCount:       r.taskItemCount,
		})
	}
	return tasks
}

func TaskLabel(itemCount int, topic string) string {
	return fmt.Sprintf("%d questions: %s", itemCount, topic)
}
