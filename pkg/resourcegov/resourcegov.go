package resourcegov

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/reconcile"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// Pool is one user-defined resource pool with its workload groups.
type Pool struct {
	Name             string
	MinCPUPercent    int
	MaxCPUPercent    int
	CapCPUPercent    int
	MinMemoryPercent int
	MaxMemoryPercent int
	Groups           []WorkloadGroup
}

// WorkloadGroup is one workload group bound to a pool.
type WorkloadGroup struct {
	Name                     string
	Importance               string
	RequestMaxMemoryPercent  int
	RequestMaxCPUTimeSec     int
	RequestMemoryGrantTimout int
	MaxDop                   int
	GroupMaxRequests         int
}

// Classifier is the classifier function, scripted from sys.sql_modules.
type Classifier struct {
	Schema     string
	Name       string
	Definition string
}

// Copier copies Resource Governor state from one instance to another.
type Copier struct {
	Source     instance.Querier
	Dest       instance.Querier
	SourceName string
	DestName   string
	Force      bool
	DryRun     bool
	// Pools restricts the copy to the named resource pools; empty means all.
	Pools []string
}

// New builds a Copier between two connected instances.
func New(source, dest *instance.Instance, force, dryRun bool, pools []string) *Copier {
	return &Copier{
		Source:     source.DB(),
		Dest:       dest.DB(),
		SourceName: source.Name(),
		DestName:   dest.Name(),
		Force:      force,
		DryRun:     dryRun,
		Pools:      pools,
	}
}

// bracket quotes a T-SQL identifier. Resource Governor DDL does not accept
// parameterized names, so generated statements must escape them.
func bracket(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

const poolsQuery = `
SELECT name, min_cpu_percent, max_cpu_percent, cap_cpu_percent,
       min_memory_percent, max_memory_percent
FROM sys.resource_governor_resource_pools
WHERE name NOT IN ('internal', 'default')
ORDER BY name`

const groupsQuery = `
SELECT g.name, g.importance, g.request_max_memory_grant_percent,
       g.request_max_cpu_time_sec, g.request_memory_grant_timeout_sec,
       g.max_dop, g.group_max_requests
FROM sys.resource_governor_workload_groups g
JOIN sys.resource_governor_resource_pools p ON p.pool_id = g.pool_id
WHERE p.name = @p1 AND g.name NOT IN ('internal', 'default')
ORDER BY g.name`

const classifierQuery = `
SELECT OBJECT_SCHEMA_NAME(c.classifier_function_id), OBJECT_NAME(c.classifier_function_id), m.definition
FROM sys.resource_governor_configuration c
JOIN sys.sql_modules m ON m.object_id = c.classifier_function_id`

func (c *Copier) wantsPool(name string) bool {
	if len(c.Pools) == 0 {
		return true
	}
	for _, p := range c.Pools {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

func (c *Copier) readPools(ctx context.Context) ([]Pool, error) {
	rows, err := c.Source.QueryContext(ctx, poolsQuery)
	if err != nil {
		return nil, fmt.Errorf("reading resource pools from %s: %w", c.SourceName, err)
	}
	var pools []Pool
	for rows.Next() {
		var p Pool
		if err := rows.Scan(&p.Name, &p.MinCPUPercent, &p.MaxCPUPercent, &p.CapCPUPercent,
			&p.MinMemoryPercent, &p.MaxMemoryPercent); err != nil {
			rows.Close()
			return nil, err
		}
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range pools {
		grpRows, err := c.Source.QueryContext(ctx, groupsQuery, pools[i].Name)
		if err != nil {
			return nil, err
		}
		for grpRows.Next() {
			var g WorkloadGroup
			if err := grpRows.Scan(&g.Name, &g.Importance, &g.RequestMaxMemoryPercent,
				&g.RequestMaxCPUTimeSec, &g.RequestMemoryGrantTimout,
				&g.MaxDop, &g.GroupMaxRequests); err != nil {
				grpRows.Close()
				return nil, err
			}
			pools[i].Groups = append(pools[i].Groups, g)
		}
		if err := grpRows.Err(); err != nil {
			grpRows.Close()
			return nil, err
		}
		grpRows.Close()
	}
	return pools, nil
}

// Copy copies pools, their workload groups, the classifier function and the
// enabled state, then reconfigures the destination governor.
func (c *Copier) Copy(ctx context.Context, rec *status.Recorder) error {
	pools, err := c.readPools(ctx)
	if err != nil {
		return err
	}

	mutated := false
	for _, p := range pools {
		if !c.wantsPool(p.Name) {
			continue
		}
		if c.copyPool(ctx, rec, p) {
			mutated = true
		}
	}

	if c.copyClassifier(ctx, rec) {
		mutated = true
	}

	if err := c.applyState(ctx, rec, mutated); err != nil {
		return err
	}
	return nil
}

func (c *Copier) copyPool(ctx context.Context, rec *status.Recorder, p Pool) bool {
	record := status.Record{
		SourceServer:      c.SourceName,
		DestinationServer: c.DestName,
		Name:              p.Name,
		Type:              "Resource Pool",
	}

	var one int
	err := c.Dest.QueryRowContext(ctx,
		`SELECT 1 FROM sys.resource_governor_resource_pools WHERE name = @p1`, p.Name,
	).Scan(&one)
	exists := err == nil
	if err != nil && err != sql.ErrNoRows {
		record.Status = status.OutcomeFailed
		record.Notes = err.Error()
		rec.Add(record)
		return false
	}

	pool := p
	res := reconcile.Apply(exists, c.Force, c.DryRun, reconcile.Callbacks{
		Drop: func() error {
			// Workload groups block the pool drop and go first.
			for _, g := range pool.Groups {
				stmt := fmt.Sprintf("IF EXISTS (SELECT 1 FROM sys.resource_governor_workload_groups WHERE name = N'%s') DROP WORKLOAD GROUP %s",
					strings.ReplaceAll(g.Name, "'", "''"), bracket(g.Name))
				if _, err := c.Dest.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("dropping workload group %s: %w", g.Name, err)
				}
			}
			if _, err := c.Dest.ExecContext(ctx, "DROP RESOURCE POOL "+bracket(pool.Name)); err != nil {
				return fmt.Errorf("dropping resource pool %s: %w", pool.Name, err)
			}
			return nil
		},
		Create: func() error {
			stmt := fmt.Sprintf(
				"CREATE RESOURCE POOL %s WITH (MIN_CPU_PERCENT = %d, MAX_CPU_PERCENT = %d, CAP_CPU_PERCENT = %d, MIN_MEMORY_PERCENT = %d, MAX_MEMORY_PERCENT = %d)",
				bracket(pool.Name), pool.MinCPUPercent, pool.MaxCPUPercent, pool.CapCPUPercent,
				pool.MinMemoryPercent, pool.MaxMemoryPercent,
			)
			if _, err := c.Dest.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("creating resource pool %s: %w", pool.Name, err)
			}
			for _, g := range pool.Groups {
				stmt := fmt.Sprintf(
					"CREATE WORKLOAD GROUP %s WITH (IMPORTANCE = %s, REQUEST_MAX_MEMORY_GRANT_PERCENT = %d, REQUEST_MAX_CPU_TIME_SEC = %d, REQUEST_MEMORY_GRANT_TIMEOUT_SEC = %d, MAX_DOP = %d, GROUP_MAX_REQUESTS = %d) USING %s",
					bracket(g.Name), g.Importance, g.RequestMaxMemoryPercent, g.RequestMaxCPUTimeSec,
					g.RequestMemoryGrantTimout, g.MaxDop, g.GroupMaxRequests, bracket(pool.Name),
				)
				if _, err := c.Dest.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("creating workload group %s: %w", g.Name, err)
				}
			}
			return nil
		},
	})
	record.Status = res.Outcome
	record.Notes = res.Notes
	rec.Add(record)
	return res.Outcome == status.OutcomeSuccessful
}

func (c *Copier) copyClassifier(ctx context.Context, rec *status.Recorder) bool {
	var cls Classifier
	err := c.Source.QueryRowContext(ctx, classifierQuery).Scan(&cls.Schema, &cls.Name, &cls.Definition)
	if err == sql.ErrNoRows {
		return false
	}

	record := status.Record{
		SourceServer:      c.SourceName,
		DestinationServer: c.DestName,
		Name:              "classifier function",
		Type:              "Classifier Function",
	}
	if err != nil {
		record.Status = status.OutcomeFailed
		record.Notes = err.Error()
		rec.Add(record)
		return false
	}
	record.Name = fmt.Sprintf("%s.%s", cls.Schema, cls.Name)

	var destSchema, destName sql.NullString
	err = c.Dest.QueryRowContext(ctx, `
SELECT OBJECT_SCHEMA_NAME(classifier_function_id), OBJECT_NAME(classifier_function_id)
FROM sys.resource_governor_configuration
WHERE classifier_function_id <> 0`).Scan(&destSchema, &destName)
	exists := err == nil && destName.Valid
	if err != nil && err != sql.ErrNoRows {
		record.Status = status.OutcomeFailed
		record.Notes = err.Error()
		rec.Add(record)
		return false
	}

	res := reconcile.Apply(exists, c.Force, c.DryRun, reconcile.Callbacks{
		Drop: func() error {
			if _, err := c.Dest.ExecContext(ctx,
				"ALTER RESOURCE GOVERNOR WITH (CLASSIFIER_FUNCTION = NULL)"); err != nil {
				return err
			}
			if _, err := c.Dest.ExecContext(ctx, "ALTER RESOURCE GOVERNOR RECONFIGURE"); err != nil {
				return err
			}
			stmt := fmt.Sprintf("DROP FUNCTION %s.%s", bracket(destSchema.String), bracket(destName.String))
			_, err := c.Dest.ExecContext(ctx, stmt)
			return err
		},
		Create: func() error {
			if _, err := c.Dest.ExecContext(ctx, cls.Definition); err != nil {
				return fmt.Errorf("creating classifier function: %w", err)
			}
			stmt := fmt.Sprintf("ALTER RESOURCE GOVERNOR WITH (CLASSIFIER_FUNCTION = %s.%s)",
				bracket(cls.Schema), bracket(cls.Name))
			_, err := c.Dest.ExecContext(ctx, stmt)
			return err
		},
	})
	record.Status = res.Outcome
	record.Notes = res.Notes
	rec.Add(record)
	return res.Outcome == status.OutcomeSuccessful
}

// applyState mirrors the source's enabled flag and reconfigures when
// anything was copied.
func (c *Copier) applyState(ctx context.Context, rec *status.Recorder, mutated bool) error {
	var enabled bool
	if err := c.Source.QueryRowContext(ctx,
		`SELECT is_enabled FROM sys.resource_governor_configuration`).Scan(&enabled); err != nil {
		return fmt.Errorf("reading resource governor state from %s: %w", c.SourceName, err)
	}

	record := status.Record{
		SourceServer:      c.SourceName,
		DestinationServer: c.DestName,
		Name:              "Resource Governor",
		Type:              "Resource Governor State",
	}

	if c.DryRun {
		record.Status = status.OutcomeSkipped
		record.Notes = "Dry run: would reconfigure"
		rec.Add(record)
		return nil
	}

	stmt := "ALTER RESOURCE GOVERNOR RECONFIGURE"
	if !enabled {
		stmt = "ALTER RESOURCE GOVERNOR DISABLE"
	}
	if !mutated && enabled {
		record.Status = status.OutcomeSkipped
		record.Notes = "Nothing copied; reconfigure not needed"
		rec.Add(record)
		return nil
	}
	if _, err := c.Dest.ExecContext(ctx, stmt); err != nil {
		record.Status = status.OutcomeFailed
		record.Notes = err.Error()
	} else {
		record.Status = status.OutcomeSuccessful
	}
	rec.Add(record)
	return nil
}
