package login

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"github.com/antonio-bravo/dbactl/pkg/instance"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// Options selects the mutations to apply to each login. Zero values mean
// "leave unchanged".
type Options struct {
	Enable          bool
	Disable         bool
	Unlock          bool
	MustChange      bool
	Password        string
	RandomPassword  bool
	DefaultDatabase string
	GrantConnect    bool
	DenyConnect     bool
	AddRoles        []string
	RemoveRoles     []string
	NewName         string
}

// Validate rejects conflicting switches. It runs before any server contact.
func (o Options) Validate() error {
	if o.Enable && o.Disable {
		return fmt.Errorf("--enable and --disable are mutually exclusive")
	}
	if o.GrantConnect && o.DenyConnect {
		return fmt.Errorf("--grant-connect and --deny-connect are mutually exclusive")
	}
	if o.Password != "" && o.RandomPassword {
		return fmt.Errorf("--password and --random-password are mutually exclusive")
	}
	if o.MustChange && o.Password == "" && !o.RandomPassword {
		return fmt.Errorf("--must-change requires a new password")
	}
	if o.Unlock && o.Password == "" && !o.RandomPassword {
		return fmt.Errorf("--unlock requires a new password")
	}
	for _, add := range o.AddRoles {
		for _, rem := range o.RemoveRoles {
			if strings.EqualFold(add, rem) {
				return fmt.Errorf("role %q appears in both --add-role and --remove-role", add)
			}
		}
	}
	if !o.Enable && !o.Disable && !o.Unlock && !o.MustChange && o.Password == "" &&
		!o.RandomPassword && o.DefaultDatabase == "" && !o.GrantConnect && !o.DenyConnect &&
		len(o.AddRoles) == 0 && len(o.RemoveRoles) == 0 && o.NewName == "" {
		return fmt.Errorf("no changes requested")
	}
	return nil
}

// Setter applies login mutations on a single instance.
type Setter struct {
	DB           instance.Querier
	InstanceName string
	DryRun       bool
}

// NewSetter builds a Setter for a connected instance.
func NewSetter(inst *instance.Instance, dryRun bool) *Setter {
	return &Setter{DB: inst.DB(), InstanceName: inst.Name(), DryRun: dryRun}
}

func bracket(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func literal(s string) string {
	return "N'" + strings.ReplaceAll(s, "'", "''") + "'"
}

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#%*+-=?"

// RandomPassword returns a 32-character password suitable for CHECK_POLICY
// logins.
func RandomPassword() (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(passwordChars)))
	for i := 0; i < 32; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordChars[n.Int64()])
	}
	return b.String(), nil
}

// statements turns Options into the ordered ALTER/GRANT batch for one login.
// The rename comes last so every other statement sees the original name.
func statements(name string, o Options) []string {
	var stmts []string
	qname := bracket(name)

	if o.Password != "" {
		clause := "ALTER LOGIN " + qname + " WITH PASSWORD = " + literal(o.Password)
		if o.MustChange {
			clause += " MUST_CHANGE, CHECK_EXPIRATION = ON, CHECK_POLICY = ON"
		}
		if o.Unlock {
			clause += " UNLOCK"
		}
		stmts = append(stmts, clause)
	}
	if o.DefaultDatabase != "" {
		stmts = append(stmts, "ALTER LOGIN "+qname+" WITH DEFAULT_DATABASE = "+bracket(o.DefaultDatabase))
	}
	if o.Enable {
		stmts = append(stmts, "ALTER LOGIN "+qname+" ENABLE")
	}
	if o.Disable {
		stmts = append(stmts, "ALTER LOGIN "+qname+" DISABLE")
	}
	if o.GrantConnect {
		stmts = append(stmts, "GRANT CONNECT SQL TO "+qname)
	}
	if o.DenyConnect {
		stmts = append(stmts, "DENY CONNECT SQL TO "+qname)
	}
	for _, r := range o.AddRoles {
		stmts = append(stmts, "ALTER SERVER ROLE "+bracket(r)+" ADD MEMBER "+qname)
	}
	for _, r := range o.RemoveRoles {
		stmts = append(stmts, "ALTER SERVER ROLE "+bracket(r)+" DROP MEMBER "+qname)
	}
	if o.NewName != "" {
		stmts = append(stmts, "ALTER LOGIN "+qname+" WITH NAME = "+bracket(o.NewName))
	}
	return stmts
}

// changes summarizes the requested mutations for the status record without
// echoing secrets.
func changes(o Options) string {
	var parts []string
	if o.Password != "" {
		parts = append(parts, "password reset")
	}
	if o.MustChange {
		parts = append(parts, "must change at next login")
	}
	if o.Unlock {
		parts = append(parts, "unlocked")
	}
	if o.DefaultDatabase != "" {
		parts = append(parts, "default database "+o.DefaultDatabase)
	}
	if o.Enable {
		parts = append(parts, "enabled")
	}
	if o.Disable {
		parts = append(parts, "disabled")
	}
	if o.GrantConnect {
		parts = append(parts, "connect granted")
	}
	if o.DenyConnect {
		parts = append(parts, "connect denied")
	}
	if len(o.AddRoles) > 0 {
		parts = append(parts, "roles added: "+strings.Join(o.AddRoles, ", "))
	}
	if len(o.RemoveRoles) > 0 {
		parts = append(parts, "roles removed: "+strings.Join(o.RemoveRoles, ", "))
	}
	if o.NewName != "" {
		parts = append(parts, "renamed to "+o.NewName)
	}
	return strings.Join(parts, "; ")
}

// Set applies opts to each named login on the instance, one status record per
// login. Options must already have passed Validate. A random password, when
// requested, is generated once and shared by every login in the call.
func (s *Setter) Set(ctx context.Context, rec *status.Recorder, logins []string, opts Options) error {
	if opts.RandomPassword {
		pw, err := RandomPassword()
		if err != nil {
			return fmt.Errorf("generating password: %w", err)
		}
		opts.Password = pw
		opts.RandomPassword = false
	}

	for _, name := range logins {
		record := status.Record{
			SourceServer:      s.InstanceName,
			DestinationServer: s.InstanceName,
			Name:              name,
			Type:              "Login",
		}

		var one int
		err := s.DB.QueryRowContext(ctx, `
SELECT 1 FROM sys.server_principals
WHERE name = @p1 AND type IN ('S', 'U', 'G')`, name).Scan(&one)
		if err == sql.ErrNoRows {
			record.Status = status.OutcomeFailed
			record.Notes = "Login not found"
			rec.Add(record)
			continue
		}
		if err != nil {
			record.Status = status.OutcomeFailed
			record.Notes = err.Error()
			rec.Add(record)
			continue
		}

		if s.DryRun {
			record.Status = status.OutcomeSkipped
			record.Notes = "Dry run: would apply " + changes(opts)
			rec.Add(record)
			continue
		}

		record.Status = status.OutcomeSuccessful
		record.Notes = changes(opts)
		for _, stmt := range statements(name, opts) {
			if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
				record.Status = status.OutcomeFailed
				record.Notes = err.Error()
				break
			}
		}
		rec.Add(record)
	}
	return nil
}
