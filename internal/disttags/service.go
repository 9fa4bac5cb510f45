package disttags

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/temirov/relkit/internal/npmcli"
)

const (
	clientNotConfiguredMessageConstant   = "dist-tag client not configured"
	missingPackageNameMessageConstant    = "package name required"
	missingPatternMessageConstant        = "dist-tag pattern required"
	removalFailedErrorTemplateConstant   = "failed to remove dist tag %s from %s: %w"
	distTagsListedMessageConstant        = "listed dist tags"
	distTagRetainedMessageConstant       = "retaining dist tag"
	distTagRemovedMessageConstant        = "removed dist tag"
	distTagRemovalPlannedMessageConstant = "would remove dist tag"
	distTagRemovalRetryMessageConstant   = "retrying dist tag removal"
	cleanSummaryMessageConstant          = "dist tag cleanup complete"
	retainReasonProtectedConstant        = "protected"
	retainReasonNoMatchConstant          = "pattern_mismatch"
	logFieldPackageConstant              = "package"
	logFieldTagConstant                  = "tag"
	logFieldVersionConstant              = "version"
	logFieldReasonConstant               = "reason"
	logFieldCountConstant                = "count"
	logFieldDelayConstant                = "delay"
	logFieldRemovedCountConstant         = "removed_count"
	logFieldRetainedCountConstant        = "retained_count"
	logFieldFailedCountConstant          = "failed_count"
	logFieldDryRunConstant               = "dry_run"
	defaultInitialRetryIntervalConstant  = 500 * time.Millisecond
	defaultMaximumRetryIntervalConstant  = 5 * time.Second
)

var (
	// ErrClientNotConfigured indicates the service was constructed without a dist-tag client.
	ErrClientNotConfigured = errors.New(clientNotConfiguredMessageConstant)
	// ErrPackageNameRequired indicates no package name was supplied.
	ErrPackageNameRequired = errors.New(missingPackageNameMessageConstant)
	// ErrPatternRequired indicates no tag pattern was supplied.
	ErrPatternRequired = errors.New(missingPatternMessageConstant)
)

// DistTagClient lists and removes npm dist tags.
type DistTagClient interface {
	ListDistTags(executionContext context.Context, workingDirectory string, packageName string) ([]npmcli.DistTag, error)
	RemoveDistTag(executionContext context.Context, workingDirectory string, packageName string, tagName string) error
}

// BackOffFactory produces a fresh backoff policy for each removal.
type BackOffFactory func() backoff.BackOff

// CleanOptions configure a cleanup run.
type CleanOptions struct {
	WorkingDirectory string
	PackageName      string
	Pattern          *regexp.Regexp
	ProtectedTags    []string
	MaxAttempts      int
	DryRun           bool
}

// CleanResult summarizes a cleanup run. Under dry-run RemovedTags lists the
// tags that would have been removed.
type CleanResult struct {
	PackageName  string
	RemovedTags  []string
	RetainedTags []string
	FailedTags   []string
}

// Service removes npm dist tags matching a pattern.
type Service struct {
	logger         *zap.Logger
	client         DistTagClient
	backOffFactory BackOffFactory
}

// NewService constructs a Service. A nil backOffFactory selects exponential backoff.
func NewService(logger *zap.Logger, client DistTagClient, backOffFactory BackOffFactory) (*Service, error) {
	if client == nil {
		return nil, ErrClientNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if backOffFactory == nil {
		backOffFactory = newExponentialBackOff
	}
	return &Service{logger: logger, client: client, backOffFactory: backOffFactory}, nil
}

func newExponentialBackOff() backoff.BackOff {
	exponentialBackOff := backoff.NewExponentialBackOff()
	exponentialBackOff.InitialInterval = defaultInitialRetryIntervalConstant
	exponentialBackOff.MaxInterval = defaultMaximumRetryIntervalConstant
	return exponentialBackOff
}

// Execute lists the package's dist tags and removes every unprotected tag
// matching the pattern. Every candidate is attempted; removal failures are
// joined into the returned error.
func (service *Service) Execute(executionContext context.Context, options CleanOptions) (CleanResult, error) {
	packageName := strings.TrimSpace(options.PackageName)
	if len(packageName) == 0 {
		return CleanResult{}, ErrPackageNameRequired
	}
	if options.Pattern == nil {
		return CleanResult{}, ErrPatternRequired
	}

	distTags, listError := service.client.ListDistTags(executionContext, options.WorkingDirectory, packageName)
	if listError != nil {
		return CleanResult{}, listError
	}
	service.logger.Debug(distTagsListedMessageConstant, zap.String(logFieldPackageConstant, packageName), zap.Int(logFieldCountConstant, len(distTags)))

	result := CleanResult{PackageName: packageName, RemovedTags: []string{}, RetainedTags: []string{}, FailedTags: []string{}}
	var removalErrors []error

	for _, distTag := range distTags {
		tagFields := []zap.Field{
			zap.String(logFieldPackageConstant, packageName),
			zap.String(logFieldTagConstant, distTag.Name),
			zap.String(logFieldVersionConstant, distTag.Version),
		}

		if slices.Contains(options.ProtectedTags, distTag.Name) {
			service.logger.Debug(distTagRetainedMessageConstant, append(tagFields, zap.String(logFieldReasonConstant, retainReasonProtectedConstant))...)
			result.RetainedTags = append(result.RetainedTags, distTag.Name)
			continue
		}
		if !options.Pattern.MatchString(distTag.Name) {
			service.logger.Debug(distTagRetainedMessageConstant, append(tagFields, zap.String(logFieldReasonConstant, retainReasonNoMatchConstant))...)
			result.RetainedTags = append(result.RetainedTags, distTag.Name)
			continue
		}

		if options.DryRun {
			service.logger.Info(distTagRemovalPlannedMessageConstant, tagFields...)
			result.RemovedTags = append(result.RemovedTags, distTag.Name)
			continue
		}

		if removalError := service.removeWithRetry(executionContext, options, packageName, distTag.Name); removalError != nil {
			removalErrors = append(removalErrors, removalError)
			result.FailedTags = append(result.FailedTags, distTag.Name)
			continue
		}

		service.logger.Info(distTagRemovedMessageConstant, tagFields...)
		result.RemovedTags = append(result.RemovedTags, distTag.Name)
	}

	service.logger.Info(
		cleanSummaryMessageConstant,
		zap.String(logFieldPackageConstant, packageName),
		zap.Int(logFieldRemovedCountConstant, len(result.RemovedTags)),
		zap.Int(logFieldRetainedCountConstant, len(result.RetainedTags)),
		zap.Int(logFieldFailedCountConstant, len(result.FailedTags)),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	return result, errors.Join(removalErrors...)
}

func (service *Service) removeWithRetry(executionContext context.Context, options CleanOptions, packageName string, tagName string) error {
	maxAttempts := options.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttemptsConstant
	}

	_, retryError := backoff.Retry(
		executionContext,
		func() (struct{}, error) {
			removalError := service.client.RemoveDistTag(executionContext, options.WorkingDirectory, packageName, tagName)
			var invalidInputError npmcli.InvalidInputError
			if errors.As(removalError, &invalidInputError) {
				return struct{}{}, backoff.Permanent(removalError)
			}
			return struct{}{}, removalError
		},
		backoff.WithBackOff(service.backOffFactory()),
		backoff.WithMaxTries(uint(maxAttempts)),
		backoff.WithNotify(func(notifyError error, delay time.Duration) {
			service.logger.Warn(
				distTagRemovalRetryMessageConstant,
				zap.String(logFieldPackageConstant, packageName),
				zap.String(logFieldTagConstant, tagName),
				zap.Duration(logFieldDelayConstant, delay),
				zap.Error(notifyError),
			)
		}),
	)
	if retryError != nil {
		return fmt.Errorf(removalFailedErrorTemplateConstant, tagName, packageName, retryError)
	}
	return nil
}
