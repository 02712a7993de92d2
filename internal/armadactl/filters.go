package armadactl

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/armadaproject/lookout-preempt/internal/common/database/lookout"
	armadaslices "github.com/armadaproject/lookout-preempt/internal/common/slices"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
)

// JobFilterArgs selects jobs by the fields Lookout can filter on.
// A trailing '*' on Queue or JobSet matches by prefix.
type JobFilterArgs struct {
	Queue       string            `json:"queue,omitempty"`
	JobSet      string            `json:"jobSet,omitempty"`
	JobIds      []string          `json:"jobIds,omitempty"`
	States      []string          `json:"states,omitempty"`
	Owner       string            `json:"owner,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

func (f *JobFilterArgs) IsEmpty() bool {
	return f.Queue == "" && f.JobSet == "" && len(f.JobIds) == 0 && len(f.States) == 0 && f.Owner == "" && len(f.Annotations) == 0
}

// Filters converts the arguments into Lookout filters.
func (f *JobFilterArgs) Filters() ([]*model.Filter, error) {
	var filters []*model.Filter
	if f.Queue != "" {
		filters = append(filters, prefixOrExact("queue", f.Queue))
	}
	if f.JobSet != "" {
		filters = append(filters, prefixOrExact("jobSet", f.JobSet))
	}
	if len(f.JobIds) > 0 {
		filters = append(filters, &model.Filter{Field: "jobId", Match: model.MatchAnyOf, Value: armadaslices.Unique(f.JobIds)})
	}
	if len(f.States) > 0 {
		states := make([]string, 0, len(f.States))
		for _, s := range f.States {
			state, err := lookout.ParseJobState(s)
			if err != nil {
				return nil, err
			}
			states = append(states, string(state))
		}
		filters = append(filters, &model.Filter{Field: "state", Match: model.MatchAnyOf, Value: armadaslices.Unique(states)})
	}
	if f.Owner != "" {
		filters = append(filters, &model.Filter{Field: "owner", Match: model.MatchExact, Value: f.Owner})
	}
	keys := maps.Keys(f.Annotations)
	slices.Sort(keys)
	for _, key := range keys {
		if key == "" {
			return nil, errors.New("annotation filters need a key")
		}
		filters = append(filters, &model.Filter{Field: key, Match: model.MatchExact, Value: f.Annotations[key], IsAnnotation: true})
	}
	return filters, nil
}

func prefixOrExact(field string, value string) *model.Filter {
	if prefix, ok := strings.CutSuffix(value, "*"); ok {
		return &model.Filter{Field: field, Match: model.MatchStartsWith, Value: prefix}
	}
	return &model.Filter{Field: field, Match: model.MatchExact, Value: value}
}
