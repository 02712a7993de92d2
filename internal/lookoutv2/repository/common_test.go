package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/armadaproject/lookout-preempt/internal/common/database/lookout"
)

const testSchema = `
CREATE TABLE job (
    job_id               TEXT PRIMARY KEY,
    queue                TEXT NOT NULL,
    owner                TEXT NOT NULL,
    namespace            TEXT,
    jobset               TEXT NOT NULL,
    priority             INTEGER NOT NULL,
    submitted            TIMESTAMP NOT NULL,
    cancelled            TIMESTAMP,
    state                INTEGER NOT NULL,
    last_transition_time TIMESTAMP NOT NULL,
    priority_class       TEXT
);
CREATE TABLE user_annotation_lookup (
    job_id TEXT NOT NULL,
    queue  TEXT NOT NULL,
    jobset TEXT NOT NULL,
    key    TEXT NOT NULL,
    value  TEXT NOT NULL,
    PRIMARY KEY (job_id, key)
);
`

var baseTime = time.Date(2022, 3, 1, 15, 4, 5, 0, time.UTC)

type testJob struct {
	jobId         string
	queue         string
	jobSet        string
	owner         string
	state         lookout.JobState
	submitted     time.Time
	priorityClass string
	annotations   map[string]string
}

// withTestDb runs action against a fresh in-memory SQLite database holding the Lookout job tables.
func withTestDb(t *testing.T, action func(db *goqu.Database)) {
	t.Helper()
	sqlDb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: opens a separate database.
	sqlDb.SetMaxOpenConns(1)
	defer sqlDb.Close()

	_, err = sqlDb.Exec(testSchema)
	require.NoError(t, err)
	action(goqu.New("sqlite3", sqlDb))
}

func insertJobs(t *testing.T, db *goqu.Database, jobs ...testJob) {
	t.Helper()
	for _, job := range jobs {
		var priorityClass interface{}
		if job.priorityClass != "" {
			priorityClass = job.priorityClass
		}
		submitted := job.submitted
		if submitted.IsZero() {
			submitted = baseTime
		}
		_, err := db.Insert(jobTable).Rows(goqu.Record{
			jobIdCol:              job.jobId,
			queueCol:              job.queue,
			ownerCol:              job.owner,
			namespaceCol:          job.queue,
			jobSetCol:             job.jobSet,
			priorityCol:           10,
			submittedCol:          submitted,
			stateCol:              lookout.JobStateOrdinalMap[job.state],
			lastTransitionTimeCol: submitted.Add(time.Minute),
			priorityClassCol:      priorityClass,
		}).Prepared(true).Executor().Exec()
		require.NoError(t, err)

		for k, v := range job.annotations {
			_, err := db.Insert(userAnnotationLookupTable).Rows(goqu.Record{
				jobIdCol:           job.jobId,
				queueCol:           job.queue,
				jobSetCol:          job.jobSet,
				annotationKeyCol:   k,
				annotationValueCol: v,
			}).Prepared(true).Executor().Exec()
			require.NoError(t, err)
		}
	}
}
