package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/evidence"
	"github.com/praharilabs/prahari-backend/internal/ledger"
	"github.com/praharilabs/prahari-backend/internal/models"
	"github.com/praharilabs/prahari-backend/internal/policy"
	"github.com/praharilabs/prahari-backend/internal/scorer"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReportNotFound = errors.New("Report not found")

// ValidationErrors is the full list of field violations found in a
// submission. Every violation is collected before returning so the client
// can fix them in one pass.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// ReportService owns the report intake pipeline plus the public feed, detail
// and vote operations.
type ReportService struct {
	db       *gorm.DB
	evidence *evidence.Processor
	scorer   scorer.Scorer
	tables   *policy.Tables
	timeout  time.Duration
	now      func() time.Time
}

func NewReportService(db *gorm.DB, ev *evidence.Processor, sc scorer.Scorer, tables *policy.Tables, scoreTimeout time.Duration) *ReportService {
	return &ReportService{
		db:       db,
		evidence: ev,
		scorer:   sc,
		tables:   tables,
		timeout:  scoreTimeout,
		now:      time.Now,
	}
}

// Submit turns a raw submission into a durable report plus updated user
// stats. Steps, in order: field validation (collecting every violation),
// evidence processing, credibility scoring (advisory, degrades to the
// default assessment), content hash over a single captured instant, points
// lookup, then one transaction inserting the report and incrementing the
// submitter's counters. Deliberately not idempotent: identical content
// yields distinct reports with distinct hashes.
func (s *ReportService) Submit(ctx context.Context, user *models.User, req *dto.CreateReportRequest, files []*multipart.FileHeader) (*dto.CreateReportResponse, error) {
	if errs := s.validate(req); len(errs) > 0 {
		return nil, errs
	}

	evidenceURLs, err := s.evidence.Process(ctx, files)
	if err != nil {
		return nil, err
	}

	assessment := s.assess(ctx, req, user.ID)

	submittedAt := s.now().UTC()
	hash := ledger.ContentHash(user.ID, req.Title, req.Location, submittedAt)
	potential := s.tables.PotentialPoints(req.Category)

	urlsJSON, err := json.Marshal(evidenceURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode evidence urls: %w", err)
	}

	report := models.Report{
		ID:             uuid.New(),
		UserID:         user.ID,
		Category:       req.Category,
		Title:          sanitize(req.Title, 200),
		Description:    sanitize(req.Description, 2000),
		Location:       sanitize(req.Location, 300),
		City:           sanitize(req.City, 100),
		Lat:            req.Lat,
		Lng:            req.Lng,
		IsAnonymous:    req.IsAnonymous,
		IsUrgent:       req.IsUrgent,
		Status:         models.StatusPending,
		AIScore:        assessment.Credibility,
		BlockchainHash: hash,
		EvidenceURLs:   urlsJSON,
		PtsPotential:   potential,
		CreatedAt:      submittedAt,
	}

	// Report row and user stat increment commit together or not at all.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		res := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"pts":     gorm.Expr("pts + ?", policy.FilingBonus),
			"reports": gorm.Expr("reports + 1"),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %s not found for stat update", user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	return &dto.CreateReportResponse{
		ReportID:       report.ID,
		AIScore:        assessment,
		PtsAwarded:     policy.FilingBonus,
		PtsPotential:   potential,
		BlockchainHash: hash,
		Message:        "Report submitted successfully",
	}, nil
}

// validate collects every field violation instead of failing on the first.
// Length bounds count runes, not bytes: a Devanagari title is three bytes per
// character and must not trip the byte count.
func (s *ReportService) validate(req *dto.CreateReportRequest) ValidationErrors {
	var errs ValidationErrors

	if !s.tables.ValidCategory(req.Category) {
		errs = append(errs, "Invalid category")
	}
	titleLen := utf8.RuneCountInString(strings.TrimSpace(req.Title))
	if titleLen < 10 || titleLen > 200 {
		errs = append(errs, "Title must be 10–200 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Location)) < 5 {
		errs = append(errs, "Location is required")
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.City)) < 2 {
		errs = append(errs, "City is required")
	}
	if utf8.RuneCountInString(req.Description) > 2000 {
		errs = append(errs, "Description too long (max 2000 chars)")
	}
	if req.Lat != nil && (*req.Lat < -90 || *req.Lat > 90) {
		errs = append(errs, "Invalid latitude")
	}
	if req.Lng != nil && (*req.Lng < -180 || *req.Lng > 180) {
		errs = append(errs, "Invalid longitude")
	}

	return errs
}

// assess runs the credibility scorer under a bounded timeout and degrades to
// the conservative default on any failure.
func (s *ReportService) assess(ctx context.Context, req *dto.CreateReportRequest, userID uuid.UUID) *scorer.Assessment {
	scoreCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	assessment, err := s.scorer.Assess(scoreCtx, scorer.Input{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		slog.Error("credibility scoring failed, using default assessment",
			"action", "score_report", "user_id", userID.String(), "error", err)
		return scorer.DefaultAssessment()
	}
	return assessment
}

// List returns the public feed, newest first, filtered by category, city and
// status where given.
func (s *ReportService) List(ctx context.Context, q dto.ListReportsQuery) (*dto.ReportsListResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.WithContext(ctx).Model(&models.Report{}).Where("is_deleted = false")
	if s.tables.ValidCategory(q.Category) {
		query = query.Where("category = ?", q.Category)
	}
	if q.City != "" {
		query = query.Where("city ILIKE ?", sanitize(q.City, 100))
	}
	if validStatus(q.Status) {
		query = query.Where("status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []models.Report
	if err := query.Preload("User").Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	resp := &dto.ReportsListResponse{
		Reports: make([]dto.ReportSummary, len(reports)),
		Total:   total,
		Page:    page,
	}
	for i, r := range reports {
		resp.Reports[i] = dto.ReportSummary{
			ID:           r.ID,
			Category:     r.Category,
			Title:        r.Title,
			Location:     r.Location,
			City:         r.City,
			Status:       r.Status,
			PtsAwarded:   r.PtsAwarded,
			Votes:        r.Votes,
			ImpactNote:   r.ImpactNote,
			AIScore:      r.AIScore,
			IsAnonymous:  r.IsAnonymous,
			ReporterName: reporterName(&r),
			CreatedAt:    r.CreatedAt,
		}
	}
	return resp, nil
}

// Get returns the full public view of one report.
func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*dto.ReportDetail, error) {
	var report models.Report
	err := s.db.WithContext(ctx).Preload("User").
		First(&report, "id = ? AND is_deleted = false", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	var urls []string
	if len(report.EvidenceURLs) > 0 {
		if err := json.Unmarshal(report.EvidenceURLs, &urls); err != nil {
			urls = nil
		}
	}
	if urls == nil {
		urls = []string{}
	}

	return &dto.ReportDetail{
		ID:             report.ID,
		Category:       report.Category,
		Title:          report.Title,
		Description:    report.Description,
		Location:       report.Location,
		City:           report.City,
		Lat:            report.Lat,
		Lng:            report.Lng,
		Status:         report.Status,
		AIScore:        report.AIScore,
		BlockchainHash: report.BlockchainHash,
		EvidenceURLs:   urls,
		Votes:          report.Votes,
		PtsPotential:   report.PtsPotential,
		PtsAwarded:     report.PtsAwarded,
		ImpactNote:     report.ImpactNote,
		IsAnonymous:    report.IsAnonymous,
		IsUrgent:       report.IsUrgent,
		RTIFiled:       report.RTIFiled,
		RTIFiledAt:     report.RTIFiledAt,
		ReporterName:   reporterName(&report),
		CreatedAt:      report.CreatedAt,
	}, nil
}

// Vote records one vote per user per report. The counter is only bumped when
// a vote row was actually inserted, so repeat votes never inflate it.
func (s *ReportService) Vote(ctx context.Context, reportID, userID uuid.UUID) error {
	var report models.Report
	if err := s.db.WithContext(ctx).First(&report, "id = ? AND is_deleted = false", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to fetch report: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote := models.Vote{ReportID: reportID, UserID: userID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote)
		if res.Error != nil {
			return fmt.Errorf("failed to record vote: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Already voted; counter stays consistent with vote rows.
			return nil
		}
		return tx.Model(&models.Report{}).Where("id = ?", reportID).
			UpdateColumn("votes", gorm.Expr("votes + 1")).Error
	})
}

func validStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusVerified, models.StatusActionTaken,
		models.StatusResolved, models.StatusRejected:
		return true
	}
	return false
}

func reporterName(r *models.Report) string {
	if r.IsAnonymous || r.User.Name == "" {
		return "Anonymous"
	}
	return r.User.Name
}
