package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hfoxfagundes/social-media-dashboard/internal/analysis"
	"github.com/hfoxfagundes/social-media-dashboard/internal/chart"
	"github.com/hfoxfagundes/social-media-dashboard/internal/dataset"
	"github.com/hfoxfagundes/social-media-dashboard/internal/dto"
	"github.com/hfoxfagundes/social-media-dashboard/internal/models"
	"github.com/hfoxfagundes/social-media-dashboard/internal/observability"
)

// ErrUnknownPanel is returned for a slug that names no panel.
var ErrUnknownPanel = errors.New("unknown panel")

// NotEnoughDataWarning is shown in place of the clustering chart.
const NotEnoughDataWarning = "Not enough data for clustering."

var panelCatalogue = []dto.PanelInfo{
	{Slug: dto.PanelUsageSleep, Tab: "1. Usage & Sleep", Title: "Usage vs Sleep & Mental Health"},
	{Slug: dto.PanelConflicts, Tab: "2. Conflicts", Title: "Relationship Conflicts"},
	{Slug: dto.PanelPlatforms, Tab: "3. Platforms", Title: "Most Used Platforms by Country"},
	{Slug: dto.PanelClustering, Tab: "4. Clustering", Title: "Clustering by Usage & Mental Health"},
	{Slug: dto.PanelAcademic, Tab: "5. Academic Performance", Title: "Addiction vs Academic Performance"},
	{Slug: dto.PanelCountryUsage, Tab: "6. Country Usage", Title: "Average Usage by Country"},
	{Slug: dto.PanelRelationships, Tab: "7. Relationships", Title: "Usage & Mental Health by Relationship Status"},
}

// DashboardService renders the dashboard panels. Every method is a pure function
// of the shared table and the supplied control values.
type DashboardService interface {
	Panels() []dto.PanelInfo
	Rows() int
	Render(ctx context.Context, request dto.PanelRequest) (dto.PanelResponse, error)
	UsageSleep(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error)
	Conflicts(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error)
	Platforms(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error)
	Clustering(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error)
	AcademicPerformance(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error)
	CountryUsage(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error)
	Relationships(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error)
}

type dashboardService struct {
	table       *dataset.Table
	partitioner analysis.Partitioner
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	defaultK    int
	logger      zerolog.Logger
	tracer      trace.Tracer

	relationshipOptions []string
	academicOptions     []string
}

// NewDashboardService builds the panel renderer over an already loaded table.
func NewDashboardService(table *dataset.Table, partitioner analysis.Partitioner, validate *validator.Validate, defaultK int, logger zerolog.Logger) DashboardService {
	if partitioner == nil {
		partitioner = analysis.NewKMeans(analysis.DefaultSeed)
	}
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if defaultK < analysis.MinClusters || defaultK > analysis.MaxClusters {
		defaultK = analysis.DefaultClusters
	}

	return &dashboardService{
		table:               table,
		partitioner:         partitioner,
		validator:           validate,
		sanitizer:           bluemonday.StrictPolicy(),
		defaultK:            defaultK,
		logger:              logger.With().Str("component", "dashboard_service").Logger(),
		tracer:              otel.Tracer("github.com/hfoxfagundes/social-media-dashboard/internal/service/dashboard"),
		relationshipOptions: withAll(table.RelationshipStatuses()),
		academicOptions:     withAll(table.AcademicLevels()),
	}
}

func (s *dashboardService) Panels() []dto.PanelInfo {
	return append([]dto.PanelInfo(nil), panelCatalogue...)
}

func (s *dashboardService) Rows() int {
	return s.table.Len()
}

func (s *dashboardService) Render(ctx context.Context, request dto.PanelRequest) (dto.PanelResponse, error) {
	switch request.Panel {
	case dto.PanelUsageSleep:
		return s.UsageSleep(ctx, request.Controls)
	case dto.PanelConflicts:
		return s.Conflicts(ctx, request.Controls)
	case dto.PanelPlatforms:
		return s.Platforms(ctx, request.Controls)
	case dto.PanelClustering:
		return s.Clustering(ctx, request.Controls)
	case dto.PanelAcademic:
		return s.AcademicPerformance(ctx, request.Controls)
	case dto.PanelCountryUsage:
		return s.CountryUsage(ctx, request.Controls)
	case dto.PanelRelationships:
		return s.Relationships(ctx, request.Controls)
	default:
		return dto.PanelResponse{}, fmt.Errorf("%w: %q", ErrUnknownPanel, request.Panel)
	}
}

func (s *dashboardService) UsageSleep(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error) {
	return s.observe(ctx, dto.PanelUsageSleep, controls, func(ctx context.Context, info dto.PanelInfo) (dto.PanelResponse, error) {
		colorBy := controls.ColorByMentalHealth
		if colorBy == "" {
			colorBy = "Yes"
		}

		spec := chart.Spec{
			Kind:  chart.KindScatter,
			Title: info.Title,
			X:     models.ColumnAvgDailyUsageHours,
			Y:     models.ColumnSleepHoursPerNight,
		}
		if colorBy == "Yes" {
			spec.Color = models.ColumnMentalHealthCategory
		}

		controlList := []dto.Control{{
			Name:    "color_by_mental_health",
			Label:   "Color by Mental Health?",
			Kind:    dto.ControlRadio,
			Value:   colorBy,
			Options: []string{"Yes", "No"},
		}}
		return s.panel(info, controlList, s.table, spec)
	})
}

func (s *dashboardService) Conflicts(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error) {
	return s.observe(ctx, dto.PanelConflicts, controls, func(ctx context.Context, info dto.PanelInfo) (dto.PanelResponse, error) {
		status := optionOrAll(controls.RelationshipStatus)
		filtered := dataset.FilterRelationshipStatus(s.table, dataset.SelectOption(status))

		spec := chart.Spec{
			Kind:  chart.KindBox,
			Title: info.Title,
			X:     models.ColumnRelationshipStatus,
			Y:     models.ColumnConflictsOverSocialMedia,
		}
		return s.panel(info, []dto.Control{s.relationshipControl(status)}, filtered, spec)
	})
}

func (s *dashboardService) Platforms(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error) {
	return s.observe(ctx, dto.PanelPlatforms, controls, func(ctx context.Context, info dto.PanelInfo) (dto.PanelResponse, error) {
		filtered := dataset.FilterCountries(s.table, dataset.ParseCountryList(controls.Countries))

		spec := chart.Spec{
			Kind:    chart.KindHistogram,
			Title:   info.Title,
			X:       models.ColumnMostUsedPlatform,
			Color:   models.ColumnCountry,
			BarMode: chart.BarModeGroup,
		}
		controlList := []dto.Control{s.countryControl("Enter countries separated by commas (e.g., India, Canada):", controls.Countries)}
		return s.panel(info, controlList, filtered, spec)
	})
}

func (s *dashboardService) Clustering(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error) {
	return s.observe(ctx, dto.PanelClustering, controls, func(ctx context.Context, info dto.PanelInfo) (dto.PanelResponse, error) {
		k := s.defaultK
		if controls.K != nil {
			k = *controls.K
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int("dashboard.cluster_k", k))

		controlList := []dto.Control{{
			Name:  "k",
			Label: "Number of clusters:",
			Kind:  dto.ControlSlider,
			Value: strconv.Itoa(k),
			Min:   analysis.MinClusters,
			Max:   analysis.MaxClusters,
		}}

		result, err := analysis.ClusterUsageAndMentalHealth(s.table, k, s.partitioner)
		if errors.Is(err, analysis.ErrNotEnoughData) {
			observability.ClusterWarnings().Inc()
			s.logger.Warn().Int("k", k).Msg("not enough rows to cluster")
			return dto.PanelResponse{
				Slug:     info.Slug,
				Title:    info.Title,
				Controls: controlList,
				Warning:  NotEnoughDataWarning,
			}, nil
		}
		if err != nil {
			return dto.PanelResponse{}, err
		}

		spec := chart.Spec{
			Kind:  chart.KindScatter,
			Title: info.Title,
			X:     models.ColumnAvgDailyUsageHours,
			Y:     models.ColumnMentalHealthScore,
			Color: models.ColumnCluster,
		}
		return s.panel(info, controlList, result, spec)
	})
}

func (s *dashboardService) AcademicPerformance(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error) {
	return s.observe(ctx, dto.PanelAcademic, controls, func(ctx context.Context, info dto.PanelInfo) (dto.PanelResponse, error) {
		level := optionOrAll(controls.AcademicLevel)
		filtered := dataset.FilterAcademicLevel(s.table, dataset.SelectOption(level))

		spec := chart.Spec{
			Kind:  chart.KindBox,
			Title: info.Title,
			X:     models.ColumnAffectsAcademicPerformance,
			Y:     models.ColumnAddictedScore,
		}
		controlList := []dto.Control{{
			Name:    "academic_level",
			Label:   "Select Academic Level:",
			Kind:    dto.ControlSelect,
			Value:   s.sanitizer.Sanitize(level),
			Options: s.academicOptions,
		}}
		return s.panel(info, controlList, filtered, spec)
	})
}

func (s *dashboardService) CountryUsage(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error) {
	return s.observe(ctx, dto.PanelCountryUsage, controls, func(ctx context.Context, info dto.PanelInfo) (dto.PanelResponse, error) {
		filtered := dataset.FilterCountries(s.table, dataset.ParseCountryList(controls.Countries))
		usage := analysis.MeanUsageByCountry(filtered)

		spec := chart.Spec{
			Kind:  chart.KindBar,
			Title: info.Title,
			X:     models.ColumnCountry,
			Y:     models.ColumnAvgDailyUsageHours,
		}
		controlList := []dto.Control{s.countryControl("Filter Country (e.g., US, UK):", controls.Countries)}
		return s.panel(info, controlList, usage, spec)
	})
}

func (s *dashboardService) Relationships(ctx context.Context, controls dto.PanelControls) (dto.PanelResponse, error) {
	return s.observe(ctx, dto.PanelRelationships, controls, func(ctx context.Context, info dto.PanelInfo) (dto.PanelResponse, error) {
		status := optionOrAll(controls.RelationshipStatus)
		filtered := dataset.FilterRelationshipStatus(s.table, dataset.SelectOption(status))

		spec := chart.Spec{
			Kind:  chart.KindBox,
			Title: info.Title,
			X:     models.ColumnRelationshipStatus,
			Y:     models.ColumnAvgDailyUsageHours,
			Color: models.ColumnMentalHealthCategory,
		}
		return s.panel(info, []dto.Control{s.relationshipControl(status)}, filtered, spec)
	})
}

// observe validates controls and wraps one panel render in a span, a metric and
// a debug log line.
func (s *dashboardService) observe(ctx context.Context, slug string, controls dto.PanelControls, build func(context.Context, dto.PanelInfo) (dto.PanelResponse, error)) (dto.PanelResponse, error) {
	info := panelInfo(slug)
	ctx, span := s.tracer.Start(ctx, "dashboard.render", trace.WithAttributes(attribute.String("dashboard.panel", slug)))
	defer span.End()

	start := time.Now()
	if err := s.validator.StructCtx(ctx, controls); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_controls")
		observability.PanelRenders().WithLabelValues(slug, "invalid").Inc()
		return dto.PanelResponse{}, err
	}

	response, err := build(ctx, info)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render_failed")
		observability.PanelRenders().WithLabelValues(slug, "error").Inc()
		return dto.PanelResponse{}, err
	}

	outcome := "ok"
	if response.Warning != "" {
		outcome = "warning"
	}
	observability.PanelRenders().WithLabelValues(slug, outcome).Inc()
	span.SetAttributes(attribute.Int("dashboard.rows", response.Rows))

	s.logger.Debug().
		Str("panel", slug).
		Int("rows", response.Rows).
		Dur("elapsed", time.Since(start)).
		Msg("panel rendered")

	return response, nil
}

func (s *dashboardService) panel(info dto.PanelInfo, controls []dto.Control, frame chart.Frame, spec chart.Spec) (dto.PanelResponse, error) {
	figure, err := chart.Build(frame, spec)
	if err != nil {
		return dto.PanelResponse{}, fmt.Errorf("build %s chart: %w", info.Slug, err)
	}

	return dto.PanelResponse{
		Slug:     info.Slug,
		Title:    info.Title,
		Controls: controls,
		Rows:     frame.Len(),
		Chart:    figure,
	}, nil
}

func (s *dashboardService) relationshipControl(status string) dto.Control {
	return dto.Control{
		Name:    "relationship_status",
		Label:   "Select Relationship Status:",
		Kind:    dto.ControlSelect,
		Value:   s.sanitizer.Sanitize(status),
		Options: s.relationshipOptions,
	}
}

func (s *dashboardService) countryControl(label, input string) dto.Control {
	return dto.Control{
		Name:  "countries",
		Label: label,
		Kind:  dto.ControlText,
		Value: s.sanitizer.Sanitize(input),
	}
}

func panelInfo(slug string) dto.PanelInfo {
	for _, info := range panelCatalogue {
		if info.Slug == slug {
			return info
		}
	}
	return dto.PanelInfo{Slug: slug}
}

func optionOrAll(value string) string {
	if value == "" {
		return dataset.AllOption
	}
	return value
}

func withAll(values []string) []string {
	return append([]string{dataset.AllOption}, values...)
}
