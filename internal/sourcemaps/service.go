package sourcemaps

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

const (
	typeScriptSourcePatternConstant   = "**/*.{ts,tsx}"
	declarationStemSuffixConstant     = ".d"
	declarationMapSuffixConstant      = ".d.ts.map"
	javaScriptMapSuffixConstant       = ".js.map"
	sourcesFieldPathConstant          = "sources"
	parentDirectoryPrefixConstant     = "../"
	slashSeparatorConstant            = "/"
	directoryPermissionsConstant      = 0o755
	noSourcesFoundMessageConstant     = "no TypeScript sources found"
	sourceRelocatedMessageConstant    = "relocated TypeScript source"
	sourceRelocationPlannedMessage    = "would relocate TypeScript source"
	sourceMapRewrittenMessageConstant = "rewrote source map"
	sourceMapRewritePlannedMessage    = "would rewrite source map"
	relocationSummaryMessageConstant  = "source relocation complete"
	logFieldDirectoryConstant         = "directory"
	logFieldSourceConstant            = "source"
	logFieldDestinationConstant       = "destination"
	logFieldSourceMapConstant         = "source_map"
	logFieldSourcesEntryConstant      = "sources_entry"
	logFieldRelocatedCountConstant    = "relocated_count"
	logFieldRewrittenCountConstant    = "rewritten_count"
	logFieldDryRunConstant            = "dry_run"
)

// RelocationOptions configure a single relocation run.
type RelocationOptions struct {
	WorkingDirectory string
	DryRun           bool
}

// RelocationResult lists the slash-separated paths, relative to the working
// directory, that were moved or rewritten (or would be under dry-run).
type RelocationResult struct {
	RelocatedFiles      []string
	RewrittenSourceMaps []string
}

// Service relocates TypeScript sources and rewrites their source maps.
type Service struct {
	logger        *zap.Logger
	fileSystem    afero.Fs
	configuration Configuration
}

// NewService constructs a Service. A nil filesystem selects the operating system filesystem.
func NewService(logger *zap.Logger, fileSystem afero.Fs, configuration Configuration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Service{logger: logger, fileSystem: fileSystem, configuration: configuration.sanitize()}
}

// Execute moves every non-declaration TypeScript source under the working
// directory into the source directory and points the matching maps at it.
func (service *Service) Execute(options RelocationOptions) (RelocationResult, error) {
	sourceFiles, discoveryError := service.discoverSources(options.WorkingDirectory)
	if discoveryError != nil {
		return RelocationResult{}, discoveryError
	}

	result := RelocationResult{RelocatedFiles: []string{}, RewrittenSourceMaps: []string{}}
	if len(sourceFiles) == 0 {
		service.logger.Info(noSourcesFoundMessageConstant, zap.String(logFieldDirectoryConstant, options.WorkingDirectory))
		return result, nil
	}

	sourceDirectoryPath := service.absolutePath(options.WorkingDirectory, service.configuration.SourceDirectory)
	if !options.DryRun {
		if mkdirError := service.fileSystem.MkdirAll(sourceDirectoryPath, directoryPermissionsConstant); mkdirError != nil {
			return result, mkdirError
		}
	}

	for _, sourceFile := range sourceFiles {
		if relocationError := service.relocate(options, sourceFile); relocationError != nil {
			return result, relocationError
		}
		result.RelocatedFiles = append(result.RelocatedFiles, sourceFile)

		rewrittenMaps, rewriteError := service.rewriteSourceMaps(options, sourceFile)
		if rewriteError != nil {
			return result, rewriteError
		}
		result.RewrittenSourceMaps = append(result.RewrittenSourceMaps, rewrittenMaps...)
	}

	service.logger.Info(
		relocationSummaryMessageConstant,
		zap.String(logFieldDirectoryConstant, options.WorkingDirectory),
		zap.Int(logFieldRelocatedCountConstant, len(result.RelocatedFiles)),
		zap.Int(logFieldRewrittenCountConstant, len(result.RewrittenSourceMaps)),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	return result, nil
}

func (service *Service) discoverSources(workingDirectory string) ([]string, error) {
	rootedFileSystem := afero.NewIOFS(afero.NewBasePathFs(service.fileSystem, workingDirectory))
	candidatePaths, globError := doublestar.Glob(rootedFileSystem, typeScriptSourcePatternConstant, doublestar.WithFilesOnly())
	if globError != nil {
		return nil, globError
	}

	sourceFiles := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		if service.isIgnored(candidatePath) || isDeclarationFile(candidatePath) {
			continue
		}
		sourceFiles = append(sourceFiles, candidatePath)
	}
	slices.Sort(sourceFiles)
	return sourceFiles, nil
}

func (service *Service) isIgnored(candidatePath string) bool {
	for _, pathSegment := range strings.Split(path.Dir(candidatePath), slashSeparatorConstant) {
		if slices.Contains(service.configuration.IgnoredDirectories, pathSegment) {
			return true
		}
	}
	return false
}

func isDeclarationFile(candidatePath string) bool {
	return strings.HasSuffix(trimExtension(path.Base(candidatePath)), declarationStemSuffixConstant)
}

func trimExtension(candidatePath string) string {
	return strings.TrimSuffix(candidatePath, path.Ext(candidatePath))
}

func (service *Service) relocate(options RelocationOptions, sourceFile string) error {
	relocatedFile := path.Join(service.configuration.SourceDirectory, sourceFile)
	sourcePath := service.absolutePath(options.WorkingDirectory, sourceFile)
	destinationPath := service.absolutePath(options.WorkingDirectory, relocatedFile)

	if options.DryRun {
		service.logger.Info(sourceRelocationPlannedMessage, zap.String(logFieldSourceConstant, sourceFile), zap.String(logFieldDestinationConstant, relocatedFile))
		return nil
	}

	if mkdirError := service.fileSystem.MkdirAll(filepath.Dir(destinationPath), directoryPermissionsConstant); mkdirError != nil {
		return RelocationError{SourcePath: sourcePath, DestinationPath: destinationPath, Cause: mkdirError}
	}
	if renameError := service.fileSystem.Rename(sourcePath, destinationPath); renameError != nil {
		return RelocationError{SourcePath: sourcePath, DestinationPath: destinationPath, Cause: renameError}
	}

	service.logger.Debug(sourceRelocatedMessageConstant, zap.String(logFieldSourceConstant, sourceFile), zap.String(logFieldDestinationConstant, relocatedFile))
	return nil
}

func (service *Service) rewriteSourceMaps(options RelocationOptions, sourceFile string) ([]string, error) {
	sourcesEntry := relocatedSourcesEntry(service.configuration.SourceDirectory, sourceFile)
	baseName := trimExtension(sourceFile)

	rewrittenMaps := make([]string, 0, 2)
	for _, mapSuffix := range []string{declarationMapSuffixConstant, javaScriptMapSuffixConstant} {
		sourceMapFile := baseName + mapSuffix
		sourceMapPath := service.absolutePath(options.WorkingDirectory, sourceMapFile)

		sourceMapInfo, statError := service.fileSystem.Stat(sourceMapPath)
		if statError != nil || sourceMapInfo.IsDir() {
			continue
		}

		sourceMapContent, readError := afero.ReadFile(service.fileSystem, sourceMapPath)
		if readError != nil {
			return rewrittenMaps, RewriteError{Path: sourceMapPath, Cause: readError}
		}
		if !gjson.ValidBytes(sourceMapContent) {
			return rewrittenMaps, InvalidSourceMapError{Path: sourceMapPath}
		}

		if options.DryRun {
			service.logger.Info(sourceMapRewritePlannedMessage, zap.String(logFieldSourceMapConstant, sourceMapFile), zap.String(logFieldSourcesEntryConstant, sourcesEntry))
			rewrittenMaps = append(rewrittenMaps, sourceMapFile)
			continue
		}

		updatedContent, setError := sjson.SetBytes(sourceMapContent, sourcesFieldPathConstant, []string{sourcesEntry})
		if setError != nil {
			return rewrittenMaps, RewriteError{Path: sourceMapPath, Cause: setError}
		}
		if writeError := afero.WriteFile(service.fileSystem, sourceMapPath, updatedContent, sourceMapInfo.Mode().Perm()); writeError != nil {
			return rewrittenMaps, RewriteError{Path: sourceMapPath, Cause: writeError}
		}

		service.logger.Debug(sourceMapRewrittenMessageConstant, zap.String(logFieldSourceMapConstant, sourceMapFile), zap.String(logFieldSourcesEntryConstant, sourcesEntry))
		rewrittenMaps = append(rewrittenMaps, sourceMapFile)
	}

	return rewrittenMaps, nil
}

// relocatedSourcesEntry returns the path from the directory holding the
// source's maps to the relocated source.
func relocatedSourcesEntry(sourceDirectory string, sourceFile string) string {
	depth := len(strings.Split(sourceFile, slashSeparatorConstant))
	return strings.Repeat(parentDirectoryPrefixConstant, depth-1) + sourceDirectory + slashSeparatorConstant + sourceFile
}

func (service *Service) absolutePath(workingDirectory string, relativePath string) string {
	return filepath.Join(workingDirectory, filepath.FromSlash(relativePath))
}
