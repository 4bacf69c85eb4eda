package jobs

import (
	"context"
	"time"

	"gorm.io/gorm"

	"products.GO/config"
	"products.GO/core/logx"
	"products.GO/cron"
	productService "products.GO/service/product"
)

const (
	IntegrityAuditName     = "integrity_audit"
	IntegrityAuditSchedule = "@hourly"

	// findings logged one by one per run; the rest only counted
	maxLoggedFindings = 50
)

var openDB = config.NewDB

func init() {
	cron.Register(cron.Job{
		Name:     IntegrityAuditName,
		Schedule: IntegrityAuditSchedule,
		Run: func(ctx context.Context) error {
			_, err := RunIntegrityAudit(ctx)
			return err
		},
	})
}

// RunIntegrityAudit opens the configured store, audits it and logs the report.
func RunIntegrityAudit(ctx context.Context) (*productService.AuditReport, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer closeDB(db)

	start := time.Now()
	rep, err := productService.Audit(ctx, db)
	if err != nil {
		return nil, err
	}

	ev := logx.Info()
	if !rep.Clean() {
		ev = logx.Warn()
	}
	counts := rep.CountByKind()
	d := ev.Str("job", IntegrityAuditName).
		Int64("products", rep.Products).
		Int64("alternates", rep.Alternates).
		Int("findings", len(rep.Findings)).
		Dur("took", time.Since(start))
	for kind, n := range counts {
		d = d.Int(kind, n)
	}
	d.Msg("integrity audit finished")

	for i, f := range rep.Findings {
		if i == maxLoggedFindings {
			break
		}
		logx.Warn().Str("kind", f.Kind).Str("upc", f.UPC).Uint("product_id", f.ProductID).Str("detail", f.Detail).Msg("integrity finding")
	}
	return rep, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
