package compression

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// Level is a data compression target.
type Level string

const (
	LevelNone Level = "NONE"
	LevelRow  Level = "ROW"
	LevelPage Level = "PAGE"
)

// ParseLevel accepts none, row or page in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "NONE":
		return LevelNone, nil
	case "ROW":
		return LevelRow, nil
	case "PAGE":
		return LevelPage, nil
	}
	return "", fmt.Errorf("invalid compression level %q: want none, row or page", s)
}

// object is one heap or index partition set eligible for a rebuild.
type object struct {
	Schema      string
	Table       string
	Index       string
	IndexID     int
	Compression string
}

// Setter applies a compression level across the tables and indexes of the
// chosen databases.
type Setter struct {
	DB           instance.Querier
	InstanceName string
	DryRun       bool
	// MaxRunTime stops issuing rebuilds once exceeded; zero means no limit.
	MaxRunTime time.Duration

	clock clockwork.Clock
}

// NewSetter builds a Setter for a connected instance.
func NewSetter(inst *instance.Instance, dryRun bool, maxRunTime time.Duration) *Setter {
	return &Setter{
		DB:           inst.DB(),
		InstanceName: inst.Name(),
		DryRun:       dryRun,
		MaxRunTime:   maxRunTime,
		clock:        clockwork.NewRealClock(),
	}
}

// NewSetterWithClock is NewSetter with an injected clock for tests.
func NewSetterWithClock(db instance.Querier, name string, dryRun bool, maxRunTime time.Duration, clock clockwork.Clock) *Setter {
	return &Setter{DB: db, InstanceName: name, DryRun: dryRun, MaxRunTime: maxRunTime, clock: clock}
}

func bracket(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// objectsQuery enumerates heaps and indexes with their current compression.
// The database name is bracket-quoted into the three-part catalog references
// because USE is not available on a pooled connection.
func objectsQuery(db string) string {
	q := bracket(db)
	return fmt.Sprintf(`
SELECT s.name, o.name, ISNULL(i.name, ''), i.index_id, p.data_compression_desc
FROM %s.sys.partitions p
JOIN %s.sys.indexes i ON i.object_id = p.object_id AND i.index_id = p.index_id
JOIN %s.sys.objects o ON o.object_id = p.object_id
JOIN %s.sys.schemas s ON s.schema_id = o.schema_id
WHERE o.type = 'U' AND o.is_ms_shipped = 0 AND p.partition_number = 1
ORDER BY s.name, o.name, i.index_id`, q, q, q, q)
}

func (s *Setter) readObjects(ctx context.Context, db string) ([]object, error) {
	rows, err := s.DB.QueryContext(ctx, objectsQuery(db))
	if err != nil {
		return nil, fmt.Errorf("enumerating objects in %s: %w", db, err)
	}
	defer rows.Close()

	var objs []object
	for rows.Next() {
		var o object
		if err := rows.Scan(&o.Schema, &o.Table, &o.Index, &o.IndexID, &o.Compression); err != nil {
			return nil, err
		}
		objs = append(objs, o)
	}
	return objs, rows.Err()
}

func rebuildStatement(db string, o object, level Level) string {
	table := bracket(db) + "." + bracket(o.Schema) + "." + bracket(o.Table)
	if o.IndexID <= 1 {
		// Heap or clustered index: the table rebuild covers it.
		return fmt.Sprintf("ALTER TABLE %s REBUILD WITH (DATA_COMPRESSION = %s)", table, level)
	}
	return fmt.Sprintf("ALTER INDEX %s ON %s REBUILD WITH (DATA_COMPRESSION = %s)", bracket(o.Index), table, level)
}

func objectName(db string, o object) string {
	name := fmt.Sprintf("%s.%s.%s", db, o.Schema, o.Table)
	if o.IndexID > 1 {
		name += "." + o.Index
	}
	return name
}

func objectType(o object) string {
	if o.IndexID == 0 {
		return "Heap Compression"
	}
	return "Index Compression"
}

// Set rebuilds every eligible object in each database at the target level,
// one status record per object plus a per-database summary. Objects already
// at the target level are skipped. Once MaxRunTime elapses no further
// rebuilds are issued and the remaining objects are recorded as skipped.
func (s *Setter) Set(ctx context.Context, rec *status.Recorder, databases []string, level Level) error {
	started := s.clock.Now()

	for _, db := range databases {
		objs, err := s.readObjects(ctx, db)
		if err != nil {
			rec.Add(status.Record{
				SourceServer:      s.InstanceName,
				DestinationServer: s.InstanceName,
				Name:              db,
				Type:              "Database Compression",
				Status:            status.OutcomeFailed,
				Notes:             err.Error(),
			})
			continue
		}

		rebuilt := 0
		for _, o := range objs {
			record := status.Record{
				SourceServer:      s.InstanceName,
				DestinationServer: s.InstanceName,
				Name:              objectName(db, o),
				Type:              objectType(o),
			}

			if strings.EqualFold(o.Compression, string(level)) {
				record.Status = status.OutcomeSkipped
				record.Notes = "Already at " + string(level)
				rec.Add(record)
				continue
			}
			if s.MaxRunTime > 0 && s.clock.Since(started) > s.MaxRunTime {
				record.Status = status.OutcomeSkipped
				record.Notes = "Max run time reached"
				rec.Add(record)
				continue
			}
			if s.DryRun {
				record.Status = status.OutcomeSkipped
				record.Notes = "Dry run: would rebuild with " + string(level)
				rec.Add(record)
				continue
			}

			if _, err := s.DB.ExecContext(ctx, rebuildStatement(db, o, level)); err != nil {
				record.Status = status.OutcomeFailed
				record.Notes = err.Error()
			} else {
				record.Status = status.OutcomeSuccessful
				record.Notes = string(level)
				rebuilt++
			}
			rec.Add(record)
		}

		rec.Add(status.Record{
			SourceServer:      s.InstanceName,
			DestinationServer: s.InstanceName,
			Name:              db,
			Type:              "Database Compression",
			Status:            status.OutcomeSuccessful,
			Notes:             fmt.Sprintf("%d of %d objects rebuilt", rebuilt, len(objs)),
		})
	}
	return nil
}
