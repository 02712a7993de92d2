package repository

import (
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
)

const (
	jobTable                  = "job"
	userAnnotationLookupTable = "user_annotation_lookup"

	// Job table columns
	jobIdCol              = "job_id"
	queueCol              = "queue"
	namespaceCol          = "namespace"
	jobSetCol             = "jobset"
	stateCol              = "state"
	ownerCol              = "owner"
	priorityCol           = "priority"
	submittedCol          = "submitted"
	cancelledCol          = "cancelled"
	lastTransitionTimeCol = "last_transition_time"
	priorityClassCol      = "priority_class"

	// User annotation lookup columns
	annotationKeyCol   = "key"
	annotationValueCol = "value"
)

var stringMatches = map[string]bool{
	model.MatchExact:      true,
	model.MatchAnyOf:      true,
	model.MatchStartsWith: true,
	model.MatchContains:   true,
}

var setMatches = map[string]bool{
	model.MatchExact: true,
	model.MatchAnyOf: true,
}

type LookoutTables struct {
	// field name -> column name
	fieldColumnMap map[string]string
	// column name -> set of supported matches for column
	filterableColumns map[string]map[string]bool
	// set of column names that can be ordered
	orderableColumns map[string]bool
}

func NewTables() *LookoutTables {
	return &LookoutTables{
		fieldColumnMap: map[string]string{
			"jobId":              jobIdCol,
			"queue":              queueCol,
			"jobSet":             jobSetCol,
			"owner":              ownerCol,
			"namespace":          namespaceCol,
			"state":              stateCol,
			"priorityClass":      priorityClassCol,
			"submitted":          submittedCol,
			"lastTransitionTime": lastTransitionTimeCol,
		},
		filterableColumns: map[string]map[string]bool{
			jobIdCol:         setMatches,
			queueCol:         stringMatches,
			jobSetCol:        stringMatches,
			ownerCol:         stringMatches,
			namespaceCol:     stringMatches,
			stateCol:         setMatches,
			priorityClassCol: stringMatches,
		},
		orderableColumns: map[string]bool{
			jobIdCol:              true,
			submittedCol:          true,
			lastTransitionTimeCol: true,
		},
	}
}

func (t *LookoutTables) ColumnFromField(field string) (string, bool) {
	col, ok := t.fieldColumnMap[field]
	return col, ok
}

func (t *LookoutTables) SupportsMatch(col, match string) bool {
	return t.filterableColumns[col][match]
}

func (t *LookoutTables) IsOrderable(col string) bool {
	return t.orderableColumns[col]
}
