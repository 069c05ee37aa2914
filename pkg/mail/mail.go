package mail

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/reconcile"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// Object type filters accepted by the copier.
const (
	TypeConfig      = "config"
	TypeAccounts    = "accounts"
	TypeProfiles    = "profiles"
	TypeMailServers = "mailservers"
)

// Account is one Database Mail account with its outgoing mail server.
type Account struct {
	Name         string
	Description  sql.NullString
	EmailAddress string
	DisplayName  sql.NullString
	ReplyTo      sql.NullString

	ServerName            string
	ServerType            string
	Port                  int
	Username              sql.NullString
	UseDefaultCredentials bool
	EnableSSL             bool
}

// Profile is one Database Mail profile with its account bindings and
// principal grants.
type Profile struct {
	Name        string
	Description sql.NullString
	Accounts    []ProfileAccount
	Principals  []PrincipalProfile
}

// ProfileAccount binds an account to a profile at a failover sequence.
type ProfileAccount struct {
	AccountName string
	Sequence    int
}

// PrincipalProfile grants a msdb principal access to a profile.
type PrincipalProfile struct {
	PrincipalName string
	IsDefault     bool
}

// ConfigValue is one sysmail configuration parameter.
type ConfigValue struct {
	Name        string
	Value       string
	Description sql.NullString
}

// Copier copies Database Mail objects from one instance to another.
type Copier struct {
	Source     instance.Querier
	Dest       instance.Querier
	SourceName string
	DestName   string
	Force      bool
	DryRun     bool
	// Types restricts what gets copied; empty means everything.
	Types []string
}

// New builds a Copier between two connected instances.
func New(source, dest *instance.Instance, force, dryRun bool, types []string) *Copier {
	return &Copier{
		Source:     source.DB(),
		Dest:       dest.DB(),
		SourceName: source.Name(),
		DestName:   dest.Name(),
		Force:      force,
		DryRun:     dryRun,
		Types:      types,
	}
}

func (c *Copier) wants(objectType string) bool {
	if len(c.Types) == 0 {
		return true
	}
	for _, t := range c.Types {
		if strings.EqualFold(t, objectType) {
			return true
		}
	}
	return false
}

// Copy copies configuration values, accounts, mail server settings and
// profiles, in that order, emitting one record per object. Per-object
// failures are recorded and the loop continues.
func (c *Copier) Copy(ctx context.Context, rec *status.Recorder) error {
	if c.wants(TypeConfig) {
		if err := c.copyConfiguration(ctx, rec); err != nil {
			return err
		}
	}
	if c.wants(TypeAccounts) {
		if err := c.copyAccounts(ctx, rec); err != nil {
			return err
		}
	}
	if c.wants(TypeMailServers) {
		if err := c.copyMailServers(ctx, rec); err != nil {
			return err
		}
	}
	if c.wants(TypeProfiles) {
		if err := c.copyProfiles(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (c *Copier) record(rec *status.Recorder, name, objectType string, res reconcile.Result) {
	rec.Add(status.Record{
		SourceServer:      c.SourceName,
		DestinationServer: c.DestName,
		Name:              name,
		Type:              objectType,
		Status:            res.Outcome,
		Notes:             res.Notes,
	})
}

const configQuery = `SELECT paramname, paramvalue, description FROM msdb.dbo.sysmail_configuration`

func (c *Copier) copyConfiguration(ctx context.Context, rec *status.Recorder) error {
	rows, err := c.Source.QueryContext(ctx, configQuery)
	if err != nil {
		return fmt.Errorf("reading mail configuration from %s: %w", c.SourceName, err)
	}
	defer rows.Close()

	var values []ConfigValue
	for rows.Next() {
		var v ConfigValue
		if err := rows.Scan(&v.Name, &v.Value, &v.Description); err != nil {
			return err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, v := range values {
		record := status.Record{
			SourceServer:      c.SourceName,
			DestinationServer: c.DestName,
			Name:              v.Name,
			Type:              "Mail Configuration",
		}

		var current string
		err := c.Dest.QueryRowContext(ctx,
			`SELECT paramvalue FROM msdb.dbo.sysmail_configuration WHERE paramname = @p1`,
			v.Name,
		).Scan(&current)
		if err != nil && err != sql.ErrNoRows {
			record.Status = status.OutcomeFailed
			record.Notes = err.Error()
			rec.Add(record)
			continue
		}

		switch {
		case err == nil && current == v.Value:
			record.Status = status.OutcomeSkipped
			record.Notes = "Destination value is identical"
		case c.DryRun:
			record.Status = status.OutcomeSkipped
			record.Notes = fmt.Sprintf("Dry run: would set to %s", v.Value)
		default:
			_, execErr := c.Dest.ExecContext(ctx,
				`EXEC msdb.dbo.sysmail_configure_sp @parameter_name = @p1, @parameter_value = @p2`,
				v.Name, v.Value,
			)
			if execErr != nil {
				record.Status = status.OutcomeFailed
				record.Notes = execErr.Error()
			} else {
				record.Status = status.OutcomeSuccessful
			}
		}
		rec.Add(record)
	}
	return nil
}

const accountsQuery = `
SELECT a.name, a.description, a.email_address, a.display_name, a.replyto_address,
       s.servername, s.servertype, s.port, s.username, s.use_default_credentials, s.enable_ssl
FROM msdb.dbo.sysmail_account a
JOIN msdb.dbo.sysmail_server s ON s.account_id = a.account_id
ORDER BY a.name`

func (c *Copier) readAccounts(ctx context.Context) ([]Account, error) {
	rows, err := c.Source.QueryContext(ctx, accountsQuery)
	if err != nil {
		return nil, fmt.Errorf("reading mail accounts from %s: %w", c.SourceName, err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(
			&a.Name, &a.Description, &a.EmailAddress, &a.DisplayName, &a.ReplyTo,
			&a.ServerName, &a.ServerType, &a.Port, &a.Username, &a.UseDefaultCredentials, &a.EnableSSL,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (c *Copier) accountExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := c.Dest.QueryRowContext(ctx,
		`SELECT 1 FROM msdb.dbo.sysmail_account WHERE name = @p1`, name,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (c *Copier) copyAccounts(ctx context.Context, rec *status.Recorder) error {
	accounts, err := c.readAccounts(ctx)
	if err != nil {
		return err
	}

	for _, a := range accounts {
		exists, err := c.accountExists(ctx, a.Name)
		if err != nil {
			c.record(rec, a.Name, "Mail Account", reconcile.Result{Outcome: status.OutcomeFailed, Notes: err.Error()})
			continue
		}

		account := a
		res := reconcile.Apply(exists, c.Force, c.DryRun, reconcile.Callbacks{
			Drop: func() error {
				_, err := c.Dest.ExecContext(ctx,
					`EXEC msdb.dbo.sysmail_delete_account_sp @account_name = @p1`, account.Name)
				return err
			},
			Create: func() error {
				_, err := c.Dest.ExecContext(ctx, `
EXEC msdb.dbo.sysmail_add_account_sp
	@account_name = @p1, @email_address = @p2, @display_name = @p3,
	@replyto_address = @p4, @description = @p5,
	@mailserver_name = @p6, @mailserver_type = @p7, @port = @p8,
	@use_default_credentials = @p9, @enable_ssl = @p10`,
					account.Name, account.EmailAddress, account.DisplayName,
					account.ReplyTo, account.Description,
					account.ServerName, account.ServerType, account.Port,
					account.UseDefaultCredentials, account.EnableSSL,
				)
				return err
			},
		})
		if res.Outcome == status.OutcomeSuccessful && a.Username.Valid && a.Username.String != "" {
			res.Notes = "Mail server credential cannot be copied; configure it on the destination"
		}
		c.record(rec, a.Name, "Mail Account", res)
	}
	return nil
}

// copyMailServers re-applies mail server settings onto accounts that exist
// on both sides, without recreating the accounts themselves.
func (c *Copier) copyMailServers(ctx context.Context, rec *status.Recorder) error {
	accounts, err := c.readAccounts(ctx)
	if err != nil {
		return err
	}

	for _, a := range accounts {
		exists, err := c.accountExists(ctx, a.Name)
		if err != nil {
			c.record(rec, a.ServerName, "Mail Server", reconcile.Result{Outcome: status.OutcomeFailed, Notes: err.Error()})
			continue
		}

		record := status.Record{
			SourceServer:      c.SourceName,
			DestinationServer: c.DestName,
			Name:              a.ServerName,
			Type:              "Mail Server",
		}

		switch {
		case !exists:
			record.Status = status.OutcomeSkipped
			record.Notes = fmt.Sprintf("Account %s does not exist on destination", a.Name)
		case c.DryRun:
			record.Status = status.OutcomeSkipped
			record.Notes = "Dry run: would update mail server settings"
		default:
			_, err := c.Dest.ExecContext(ctx, `
EXEC msdb.dbo.sysmail_update_account_sp
	@account_name = @p1, @mailserver_name = @p2, @mailserver_type = @p3,
	@port = @p4, @use_default_credentials = @p5, @enable_ssl = @p6`,
				a.Name, a.ServerName, a.ServerType, a.Port, a.UseDefaultCredentials, a.EnableSSL,
			)
			if err != nil {
				record.Status = status.OutcomeFailed
				record.Notes = err.Error()
			} else {
				record.Status = status.OutcomeSuccessful
			}
		}
		rec.Add(record)
	}
	return nil
}

const profilesQuery = `SELECT name, description FROM msdb.dbo.sysmail_profile ORDER BY name`

const profileAccountsQuery = `
SELECT a.name, pa.sequence_number
FROM msdb.dbo.sysmail_profileaccount pa
JOIN msdb.dbo.sysmail_profile p ON p.profile_id = pa.profile_id
JOIN msdb.dbo.sysmail_account a ON a.account_id = pa.account_id
WHERE p.name = @p1
ORDER BY pa.sequence_number`

const profilePrincipalsQuery = `
SELECT dp.name, pp.is_default
FROM msdb.dbo.sysmail_principalprofile pp
JOIN msdb.dbo.sysmail_profile p ON p.profile_id = pp.profile_id
JOIN msdb.sys.database_principals dp ON dp.sid = pp.principal_sid
WHERE p.name = @p1`

func (c *Copier) readProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := c.Source.QueryContext(ctx, profilesQuery)
	if err != nil {
		return nil, fmt.Errorf("reading mail profiles from %s: %w", c.SourceName, err)
	}
	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Name, &p.Description); err != nil {
			rows.Close()
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range profiles {
		accRows, err := c.Source.QueryContext(ctx, profileAccountsQuery, profiles[i].Name)
		if err != nil {
			return nil, err
		}
		for accRows.Next() {
			var pa ProfileAccount
			if err := accRows.Scan(&pa.AccountName, &pa.Sequence); err != nil {
				accRows.Close()
				return nil, err
			}
			profiles[i].Accounts = append(profiles[i].Accounts, pa)
		}
		if err := accRows.Err(); err != nil {
			accRows.Close()
			return nil, err
		}
		accRows.Close()

		prinRows, err := c.Source.QueryContext(ctx, profilePrincipalsQuery, profiles[i].Name)
		if err != nil {
			return nil, err
		}
		for prinRows.Next() {
			var pp PrincipalProfile
			if err := prinRows.Scan(&pp.PrincipalName, &pp.IsDefault); err != nil {
				prinRows.Close()
				return nil, err
			}
			profiles[i].Principals = append(profiles[i].Principals, pp)
		}
		if err := prinRows.Err(); err != nil {
			prinRows.Close()
			return nil, err
		}
		prinRows.Close()
	}
	return profiles, nil
}

func (c *Copier) copyProfiles(ctx context.Context, rec *status.Recorder) error {
	profiles, err := c.readProfiles(ctx)
	if err != nil {
		return err
	}

	for _, p := range profiles {
		var one int
		err := c.Dest.QueryRowContext(ctx,
			`SELECT 1 FROM msdb.dbo.sysmail_profile WHERE name = @p1`, p.Name,
		).Scan(&one)
		exists := err == nil
		if err != nil && err != sql.ErrNoRows {
			c.record(rec, p.Name, "Mail Profile", reconcile.Result{Outcome: status.OutcomeFailed, Notes: err.Error()})
			continue
		}

		profile := p
		res := reconcile.Apply(exists, c.Force, c.DryRun, reconcile.Callbacks{
			Drop: func() error {
				_, err := c.Dest.ExecContext(ctx,
					`EXEC msdb.dbo.sysmail_delete_profile_sp @profile_name = @p1`, profile.Name)
				return err
			},
			Create: func() error {
				if _, err := c.Dest.ExecContext(ctx,
					`EXEC msdb.dbo.sysmail_add_profile_sp @profile_name = @p1, @description = @p2`,
					profile.Name, profile.Description,
				); err != nil {
					return err
				}
				for _, pa := range profile.Accounts {
					if _, err := c.Dest.ExecContext(ctx, `
EXEC msdb.dbo.sysmail_add_profileaccount_sp
	@profile_name = @p1, @account_name = @p2, @sequence_number = @p3`,
						profile.Name, pa.AccountName, pa.Sequence,
					); err != nil {
						return fmt.Errorf("binding account %s: %w", pa.AccountName, err)
					}
				}
				for _, pp := range profile.Principals {
					isDefault := 0
					if pp.IsDefault {
						isDefault = 1
					}
					if _, err := c.Dest.ExecContext(ctx, `
EXEC msdb.dbo.sysmail_add_principalprofile_sp
	@profile_name = @p1, @principal_name = @p2, @is_default = @p3`,
						profile.Name, pp.PrincipalName, isDefault,
					); err != nil {
						return fmt.Errorf("granting principal %s: %w", pp.PrincipalName, err)
					}
				}
				return nil
			},
		})
		c.record(rec, p.Name, "Mail Profile", res)
	}
	return nil
}
