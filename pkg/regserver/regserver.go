package regserver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/reconcile"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// Group is one registered-server group in the shared (CMS) store.
type Group struct {
	ID          int
	Name        string
	Description sql.NullString
	ParentID    sql.NullInt64
	Servers     []Server
	Children    []*Group
}

// Server is one registered server within a group.
type Server struct {
	Name        string
	ServerName  string
	Description sql.NullString
}

// Copier copies the shared registered-server tree from one CMS to another.
type Copier struct {
	Source     instance.Querier
	Dest       instance.Querier
	SourceName string
	DestName   string
	Force      bool
	DryRun     bool
	// Groups restricts the copy to the named top-level groups; empty means all.
	Groups []string
}

// New builds a Copier between two connected instances.
func New(source, dest *instance.Instance, force, dryRun bool, groups []string) *Copier {
	return &Copier{
		Source:     source.DB(),
		Dest:       dest.DB(),
		SourceName: source.Name(),
		DestName:   dest.Name(),
		Force:      force,
		DryRun:     dryRun,
		Groups:     groups,
	}
}

const groupsQuery = `
SELECT server_group_id, name, description, parent_id
FROM msdb.dbo.sysmanagement_shared_server_groups_internal
WHERE server_type = 0
ORDER BY parent_id, name`

const serversQuery = `
SELECT name, server_name, description
FROM msdb.dbo.sysmanagement_shared_registered_servers_internal
WHERE server_group_id = @p1
ORDER BY name`

// readTree loads the source group tree rooted at the database engine root
// group. The root itself is a system object and is not copied.
func (c *Copier) readTree(ctx context.Context) (*Group, error) {
	rows, err := c.Source.QueryContext(ctx, groupsQuery)
	if err != nil {
		return nil, fmt.Errorf("reading registered server groups from %s: %w", c.SourceName, err)
	}

	byID := map[int]*Group{}
	var all []*Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.ParentID); err != nil {
			rows.Close()
			return nil, err
		}
		byID[g.ID] = &g
		all = append(all, &g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var root *Group
	for _, g := range all {
		if !g.ParentID.Valid {
			root = g
			continue
		}
		if parent, ok := byID[int(g.ParentID.Int64)]; ok {
			parent.Children = append(parent.Children, g)
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root registered server group found on %s", c.SourceName)
	}

	for _, g := range all {
		srvRows, err := c.Source.QueryContext(ctx, serversQuery, g.ID)
		if err != nil {
			return nil, err
		}
		for srvRows.Next() {
			var s Server
			if err := srvRows.Scan(&s.Name, &s.ServerName, &s.Description); err != nil {
				srvRows.Close()
				return nil, err
			}
			g.Servers = append(g.Servers, s)
		}
		if err := srvRows.Err(); err != nil {
			srvRows.Close()
			return nil, err
		}
		srvRows.Close()
	}

	return root, nil
}

func (c *Copier) wantsGroup(name string) bool {
	if len(c.Groups) == 0 {
		return true
	}
	for _, g := range c.Groups {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}

// Copy walks the source tree and recreates groups and servers on the
// destination, one status record per object.
func (c *Copier) Copy(ctx context.Context, rec *status.Recorder) error {
	root, err := c.readTree(ctx)
	if err != nil {
		return err
	}

	destRootID, err := c.destRootID(ctx)
	if err != nil {
		return fmt.Errorf("locating destination root group on %s: %w", c.DestName, err)
	}

	// Servers registered directly under the root.
	c.copyServers(ctx, rec, root, destRootID)

	for _, child := range root.Children {
		if !c.wantsGroup(child.Name) {
			continue
		}
		c.copyGroup(ctx, rec, child, destRootID)
	}
	return nil
}

func (c *Copier) destRootID(ctx context.Context) (int, error) {
	var id int
	err := c.Dest.QueryRowContext(ctx, `
SELECT server_group_id
FROM msdb.dbo.sysmanagement_shared_server_groups_internal
WHERE server_type = 0 AND parent_id IS NULL`).Scan(&id)
	return id, err
}

func (c *Copier) destGroupID(ctx context.Context, name string, parentID int) (int, bool, error) {
	var id int
	err := c.Dest.QueryRowContext(ctx, `
SELECT server_group_id
FROM msdb.dbo.sysmanagement_shared_server_groups_internal
WHERE name = @p1 AND parent_id = @p2`, name, parentID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (c *Copier) copyGroup(ctx context.Context, rec *status.Recorder, g *Group, destParentID int) {
	record := status.Record{
		SourceServer:      c.SourceName,
		DestinationServer: c.DestName,
		Name:              g.Name,
		Type:              "Registered Server Group",
	}

	destID, exists, err := c.destGroupID(ctx, g.Name, destParentID)
	if err != nil {
		record.Status = status.OutcomeFailed
		record.Notes = err.Error()
		rec.Add(record)
		return
	}

	group := g
	res := reconcile.Apply(exists, c.Force, c.DryRun, reconcile.Callbacks{
		Drop: func() error {
			_, err := c.Dest.ExecContext(ctx,
				`EXEC msdb.dbo.sp_sysmanagement_delete_shared_server_group @server_group_id = @p1`,
				destID)
			return err
		},
		Create: func() error {
			_, err := c.Dest.ExecContext(ctx, `
EXEC msdb.dbo.sp_sysmanagement_add_shared_server_group
	@name = @p1, @description = @p2, @parent_id = @p3, @server_type = 0`,
				group.Name, group.Description, destParentID)
			return err
		},
	})
	record.Status = res.Outcome
	record.Notes = res.Notes
	rec.Add(record)

	if res.Outcome == status.OutcomeFailed {
		return
	}
	if !exists && c.DryRun {
		// Nothing to descend into: the group was never created.
		return
	}

	if res.Outcome == status.OutcomeSuccessful {
		// Create (or drop-and-recreate) changed the id.
		id, ok, err := c.destGroupID(ctx, g.Name, destParentID)
		if err != nil || !ok {
			return
		}
		destID = id
	}

	c.copyServers(ctx, rec, g, destID)
	for _, child := range g.Children {
		c.copyGroup(ctx, rec, child, destID)
	}
}

func (c *Copier) copyServers(ctx context.Context, rec *status.Recorder, g *Group, destGroupID int) {
	for _, s := range g.Servers {
		record := status.Record{
			SourceServer:      c.SourceName,
			DestinationServer: c.DestName,
			Name:              s.Name,
			Type:              "Registered Server",
		}

		// Registering the destination CMS inside itself is not supported by
		// the shared store, so those entries are left out.
		if strings.EqualFold(s.ServerName, c.DestName) {
			record.Status = status.OutcomeSkipped
			record.Notes = "Left out: would register the destination within itself"
			rec.Add(record)
			continue
		}

		var destServerID int
		err := c.Dest.QueryRowContext(ctx, `
SELECT server_id
FROM msdb.dbo.sysmanagement_shared_registered_servers_internal
WHERE name = @p1 AND server_group_id = @p2`, s.Name, destGroupID).Scan(&destServerID)
		exists := err == nil
		if err != nil && err != sql.ErrNoRows {
			record.Status = status.OutcomeFailed
			record.Notes = err.Error()
			rec.Add(record)
			continue
		}

		server := s
		res := reconcile.Apply(exists, c.Force, c.DryRun, reconcile.Callbacks{
			Drop: func() error {
				_, err := c.Dest.ExecContext(ctx,
					`EXEC msdb.dbo.sp_sysmanagement_delete_shared_registered_server @server_id = @p1`,
					destServerID)
				return err
			},
			Create: func() error {
				_, err := c.Dest.ExecContext(ctx, `
EXEC msdb.dbo.sp_sysmanagement_add_shared_registered_server
	@name = @p1, @server_group_id = @p2, @server_name = @p3,
	@description = @p4, @server_type = 0`,
					server.Name, destGroupID, server.ServerName, server.Description)
				return err
			},
		})
		record.Status = res.Outcome
		record.Notes = res.Notes
		rec.Add(record)
	}
}
