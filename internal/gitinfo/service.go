package gitinfo

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/relkit/internal/gitrepo"
)

const (
	informationWrittenMessageConstant = "git information written"
	logFieldDirectoryConstant         = "directory"
	logFieldOutputPathConstant        = "output_path"
	logFieldBranchConstant            = "branch"
	logFieldSHAConstant               = "sha"
	logFieldRepositoryConstant        = "repository"
)

// Service extracts Git information for a directory and writes it next to the sources.
type Service struct {
	logger    *zap.Logger
	extractor *Extractor
	writer    *Writer
}

// NewService wires an Extractor and Writer sharing the same filesystem.
func NewService(logger *zap.Logger, fileSystem afero.Fs, style gitrepo.RemoteURLStyle) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:    logger,
		extractor: NewExtractor(fileSystem, gitrepo.NewRemoteURLNormalizer(style)),
		writer:    NewWriter(fileSystem),
	}
}

// Execute extracts the repository information and persists it as git-info.json.
func (service *Service) Execute(directory string) (GitInformation, error) {
	information, extractionError := service.extractor.Extract(directory)
	if extractionError != nil {
		return GitInformation{}, extractionError
	}

	informationPath, writeError := service.writer.Write(directory, information)
	if writeError != nil {
		return GitInformation{}, writeError
	}

	service.logger.Info(
		informationWrittenMessageConstant,
		zap.String(logFieldDirectoryConstant, directory),
		zap.String(logFieldOutputPathConstant, informationPath),
		zap.String(logFieldBranchConstant, information.Branch),
		zap.String(logFieldSHAConstant, information.SHA),
		zap.String(logFieldRepositoryConstant, information.Repository),
	)

	return information, nil
}
