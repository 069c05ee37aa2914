package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/antonio-bravo/dbactl/pkg/instance"
)

// Details is the metadata row returned for one database.
type Details struct {
	Name               string    `gorm:"column:name" json:"name"`
	Owner              string    `gorm:"column:owner" json:"owner"`
	Collation          string    `gorm:"column:collation" json:"collation"`
	CompatibilityLevel int       `gorm:"column:compatibility_level" json:"compatibilityLevel"`
	RecoveryModel      string    `gorm:"column:recovery_model" json:"recoveryModel"`
	State              string    `gorm:"column:state" json:"state"`
	SizeMB             float64   `gorm:"column:size_mb" json:"sizeMB"`
	CreateDate         time.Time `gorm:"column:create_date" json:"createDate"`
	QueryStoreOn       bool      `gorm:"column:is_query_store_on" json:"queryStoreOn"`
}

// Filter narrows the listing. An empty filter returns every database.
type Filter struct {
	Databases     []string
	Exclude       []string
	ExcludeSystem bool
}

// Lister reads database metadata from a single instance.
type Lister struct {
	DB           *gorm.DB
	InstanceName string
}

// NewLister builds a Lister for a connected instance.
func NewLister(inst *instance.Instance) *Lister {
	return &Lister{DB: inst.Gorm(), InstanceName: inst.Name()}
}

const listQuery = `
SELECT d.name AS name,
       ISNULL(SUSER_SNAME(d.owner_sid), '') AS owner,
       ISNULL(d.collation_name, '') AS collation,
       d.compatibility_level AS compatibility_level,
       d.recovery_model_desc AS recovery_model,
       d.state_desc AS state,
       CAST(SUM(CAST(mf.size AS BIGINT)) * 8.0 / 1024 AS DECIMAL(18, 2)) AS size_mb,
       d.create_date AS create_date,
       d.is_query_store_on AS is_query_store_on
FROM sys.databases d
JOIN sys.master_files mf ON mf.database_id = d.database_id
%s
GROUP BY d.name, d.owner_sid, d.collation_name, d.compatibility_level,
         d.recovery_model_desc, d.state_desc, d.create_date, d.is_query_store_on
ORDER BY d.name`

// List returns metadata for the databases matching the filter.
func (l *Lister) List(ctx context.Context, f Filter) ([]Details, error) {
	where := ""
	var conds []string
	var args []interface{}
	if f.ExcludeSystem {
		conds = append(conds, "d.database_id > 4")
	}
	if len(f.Databases) > 0 {
		conds = append(conds, "d.name IN ?")
		args = append(args, f.Databases)
	}
	if len(f.Exclude) > 0 {
		conds = append(conds, "d.name NOT IN ?")
		args = append(args, f.Exclude)
	}
	for i, c := range conds {
		if i == 0 {
			where = "WHERE " + c
		} else {
			where += " AND " + c
		}
	}

	var out []Details
	err := l.DB.WithContext(ctx).Raw(fmt.Sprintf(listQuery, where), args...).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing databases on %s: %w", l.InstanceName, err)
	}
	return out, nil
}
