package repository

import (
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/pkg/errors"

	"github.com/armadaproject/lookout-preempt/internal/common/armadacontext"
	"github.com/armadaproject/lookout-preempt/internal/common/database"
	"github.com/armadaproject/lookout-preempt/internal/common/database/lookout"
	"github.com/armadaproject/lookout-preempt/internal/lookoutv2/model"
)

type GetJobsRepository interface {
	GetJobs(ctx *armadacontext.Context, filters []*model.Filter, order *model.Order, skip int, take int) (*GetJobsResult, error)
}

type GetJobsResult struct {
	Jobs []*model.Job
}

type SqlGetJobsRepository struct {
	db           *goqu.Database
	queryBuilder *QueryBuilder
}

type jobRow struct {
	jobId              string
	queue              string
	owner              string
	namespace          sql.NullString
	jobSet             string
	priority           int64
	submitted          time.Time
	cancelled          sql.NullTime
	state              int
	lastTransitionTime time.Time
	priorityClass      sql.NullString
}

func NewSqlGetJobsRepository(db *goqu.Database) *SqlGetJobsRepository {
	return &SqlGetJobsRepository{
		db:           db,
		queryBuilder: NewQueryBuilder(db, NewTables()),
	}
}

func (r *SqlGetJobsRepository) GetJobs(ctx *armadacontext.Context, filters []*model.Filter, order *model.Order, skip int, take int) (*GetJobsResult, error) {
	ds, err := r.queryBuilder.GetJobs(filters, order, skip, take)
	if err != nil {
		return nil, err
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "error building jobs query")
	}
	logQuery(ctx, "GetJobs", query, args)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error querying jobs")
	}
	defer rows.Close()
	var jobs []*model.Job
	jobsById := make(map[string]*model.Job)
	var jobIds []string
	for rows.Next() {
		var row jobRow
		if err := rows.Scan(
			&row.jobId,
			&row.queue,
			&row.owner,
			&row.namespace,
			&row.jobSet,
			&row.priority,
			&row.submitted,
			&row.cancelled,
			&row.state,
			&row.lastTransitionTime,
			&row.priorityClass,
		); err != nil {
			return nil, errors.Wrap(err, "error scanning job row")
		}
		job := jobRowToModel(&row)
		jobs = append(jobs, job)
		jobsById[job.JobId] = job
		jobIds = append(jobIds, job.JobId)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading job rows")
	}
	if len(jobIds) == 0 {
		return &GetJobsResult{Jobs: jobs}, nil
	}
	if err := r.addAnnotations(ctx, jobIds, jobsById); err != nil {
		return nil, err
	}
	return &GetJobsResult{Jobs: jobs}, nil
}

func (r *SqlGetJobsRepository) addAnnotations(ctx *armadacontext.Context, jobIds []string, jobsById map[string]*model.Job) error {
	query, args, err := r.queryBuilder.GetAnnotations(jobIds).ToSQL()
	if err != nil {
		return errors.Wrap(err, "error building annotations query")
	}
	logQuery(ctx, "GetAnnotations", query, args)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error querying job annotations")
	}
	defer rows.Close()
	for rows.Next() {
		var jobId, key, value string
		if err := rows.Scan(&jobId, &key, &value); err != nil {
			return errors.Wrap(err, "error scanning annotation row")
		}
		if job, ok := jobsById[jobId]; ok {
			job.Annotations[key] = value
		}
	}
	return errors.Wrap(rows.Err(), "error reading annotation rows")
}

func jobRowToModel(row *jobRow) *model.Job {
	return &model.Job{
		Annotations:        make(map[string]string),
		Cancelled:          database.ParseNullTime(row.cancelled),
		JobId:              row.jobId,
		JobSet:             row.jobSet,
		LastTransitionTime: row.lastTransitionTime,
		Namespace:          database.ParseNullString(row.namespace),
		Owner:              row.owner,
		Priority:           row.priority,
		PriorityClass:      database.ParseNullString(row.priorityClass),
		Queue:              row.queue,
		State:              string(lookout.JobStateMap[row.state]),
		Submitted:          row.submitted,
	}
}

func logQuery(ctx *armadacontext.Context, description string, query string, args []interface{}) {
	ctx.Log.WithField("args", args).Debugf("%s query: %s", description, query)
}
