package repository

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/armadaerrors"
	"github.com/armadaproject/lookout-preempt/internal/common/database/lookout"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
)

// QueryBuilder turns Lookout filters and orderings into goqu datasets over the Lookout schema.
type QueryBuilder struct {
	db            *goqu.Database
	lookoutTables *LookoutTables
}

func NewQueryBuilder(db *goqu.Database, lookoutTables *LookoutTables) *QueryBuilder {
	return &QueryBuilder{db: db, lookoutTables: lookoutTables}
}

func jobCol(col string) exp.IdentifierExpression {
	return goqu.T(jobTable).Col(col)
}

func annotationCol(col string) exp.IdentifierExpression {
	return goqu.T(userAnnotationLookupTable).Col(col)
}

// GetJobs returns a dataset selecting a single page of jobs matching every filter.
func (qb *QueryBuilder) GetJobs(filters []*model.Filter, order *model.Order, skip int, take int) (*goqu.SelectDataset, error) {
	if skip < 0 {
		return nil, &armadaerrors.ErrInvalidArgument{Name: "skip", Value: skip, Message: "must not be negative"}
	}
	if take <= 0 {
		return nil, &armadaerrors.ErrInvalidArgument{Name: "take", Value: take, Message: "must be greater than zero"}
	}
	where, err := qb.filterExpressions(filters)
	if err != nil {
		return nil, err
	}
	orderBy, err := qb.orderExpressions(order)
	if err != nil {
		return nil, &armadaerrors.ErrInvalidArgument{Name: "order", Value: order.Field, Message: err.Error()}
	}
	return qb.db.
		From(jobTable).
		Select(
			jobCol(jobIdCol),
			jobCol(queueCol),
			jobCol(ownerCol),
			jobCol(namespaceCol),
			jobCol(jobSetCol),
			jobCol(priorityCol),
			jobCol(submittedCol),
			jobCol(cancelledCol),
			jobCol(stateCol),
			jobCol(lastTransitionTimeCol),
			jobCol(priorityClassCol),
		).
		Where(where...).
		Order(orderBy...).
		Offset(uint(skip)).
		Limit(uint(take)).
		Prepared(true), nil
}

// GetAnnotations returns a dataset selecting the user annotations of the given jobs.
func (qb *QueryBuilder) GetAnnotations(jobIds []string) *goqu.SelectDataset {
	return qb.db.
		From(userAnnotationLookupTable).
		Select(
			annotationCol(jobIdCol),
			annotationCol(annotationKeyCol),
			annotationCol(annotationValueCol),
		).
		Where(annotationCol(jobIdCol).In(jobIds)).
		Prepared(true)
}

func (qb *QueryBuilder) filterExpressions(filters []*model.Filter) ([]exp.Expression, error) {
	var expressions []exp.Expression
	for _, filter := range filters {
		if filter == nil {
			continue
		}
		var expression exp.Expression
		var err error
		if filter.IsAnnotation {
			expression, err = qb.annotationFilter(filter)
		} else {
			expression, err = qb.fieldFilter(filter)
		}
		if err != nil {
			return nil, &armadaerrors.ErrInvalidArgument{Name: "filters", Value: filter.Field, Message: err.Error()}
		}
		expressions = append(expressions, expression)
	}
	return expressions, nil
}

func (qb *QueryBuilder) fieldFilter(filter *model.Filter) (exp.Expression, error) {
	col, ok := qb.lookoutTables.ColumnFromField(filter.Field)
	if !ok || qb.lookoutTables.filterableColumns[col] == nil {
		return nil, errors.Errorf("cannot filter on field %q", filter.Field)
	}
	if !qb.lookoutTables.SupportsMatch(col, filter.Match) {
		return nil, errors.Errorf("match %q is not supported for field %q", filter.Match, filter.Field)
	}
	value := filter.Value
	if col == stateCol {
		ordinals, err := stateOrdinals(filter.Value)
		if err != nil {
			return nil, err
		}
		if filter.Match == model.MatchExact {
			if len(ordinals) != 1 {
				return nil, errors.Errorf("exact state filter needs exactly one state, got %v", filter.Value)
			}
			value = ordinals[0]
		} else {
			value = ordinals
		}
	}
	return matchExpression(jobCol(col), filter.Match, value)
}

func (qb *QueryBuilder) annotationFilter(filter *model.Filter) (exp.Expression, error) {
	if filter.Field == "" {
		return nil, errors.New("annotation filter needs an annotation key")
	}
	if !stringMatches[filter.Match] {
		return nil, errors.Errorf("match %q is not supported for annotations", filter.Match)
	}
	valueMatch, err := matchExpression(annotationCol(annotationValueCol), filter.Match, filter.Value)
	if err != nil {
		return nil, err
	}
	jobsWithAnnotation := qb.db.
		From(userAnnotationLookupTable).
		Select(annotationCol(jobIdCol)).
		Where(
			annotationCol(annotationKeyCol).Eq(filter.Field),
			valueMatch,
		)
	return jobCol(jobIdCol).In(jobsWithAnnotation), nil
}

func (qb *QueryBuilder) orderExpressions(order *model.Order) ([]exp.OrderedExpression, error) {
	tieBreak := jobCol(jobIdCol).Asc()
	if order == nil {
		return []exp.OrderedExpression{tieBreak}, nil
	}
	col, ok := qb.lookoutTables.ColumnFromField(order.Field)
	if !ok || !qb.lookoutTables.IsOrderable(col) {
		return nil, errors.Errorf("cannot order by field %q", order.Field)
	}
	var ordered exp.OrderedExpression
	switch strings.ToUpper(order.Direction) {
	case model.DirectionAsc:
		ordered = jobCol(col).Asc()
	case model.DirectionDesc:
		ordered = jobCol(col).Desc()
	default:
		return nil, errors.Errorf("unknown order direction %q", order.Direction)
	}
	if col == jobIdCol {
		return []exp.OrderedExpression{ordered}, nil
	}
	return []exp.OrderedExpression{ordered, tieBreak}, nil
}

func matchExpression(col exp.IdentifierExpression, match string, value interface{}) (exp.Expression, error) {
	switch match {
	case model.MatchExact:
		if isList(value) {
			return nil, errors.Errorf("exact match needs a single value, got %v", value)
		}
		return col.Eq(value), nil
	case model.MatchAnyOf:
		values, err := toList(value)
		if err != nil {
			return nil, err
		}
		return col.In(values), nil
	case model.MatchStartsWith:
		s, err := toString(value)
		if err != nil {
			return nil, err
		}
		return col.Like(escapeLike(s) + "%"), nil
	case model.MatchContains:
		s, err := toString(value)
		if err != nil {
			return nil, err
		}
		return col.Like("%" + escapeLike(s) + "%"), nil
	default:
		return nil, errors.Errorf("unknown match %q", match)
	}
}

func stateOrdinals(value interface{}) ([]int, error) {
	var names []interface{}
	if isList(value) {
		list, err := toList(value)
		if err != nil {
			return nil, err
		}
		names = list
	} else {
		names = []interface{}{value}
	}
	ordinals := make([]int, 0, len(names))
	for _, name := range names {
		s, err := toString(name)
		if err != nil {
			return nil, err
		}
		state, err := lookout.ParseJobState(s)
		if err != nil {
			return nil, err
		}
		ordinals = append(ordinals, lookout.JobStateOrdinalMap[state])
	}
	return ordinals, nil
}

func isList(value interface{}) bool {
	switch value.(type) {
	case []interface{}, []string, []int:
		return true
	}
	return false
}

func toList(value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case []interface{}:
		if len(v) == 0 {
			return nil, errors.New("anyOf match needs at least one value")
		}
		return v, nil
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return toList(out)
	case []int:
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = n
		}
		return toList(out)
	default:
		return nil, errors.Errorf("anyOf match needs a list of values, got %T", value)
	}
}

func toString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", errors.Errorf("expected a string value, got %T", value)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
