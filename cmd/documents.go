package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/ingest"
	"github.com/talachev/interview-pilot/internal/textproc"
)

// indexChunkSize is the chunk length used when splitting a document for
// embedding.
const indexChunkSize = 1000

// preparedDocuments is the shared front half of both interview commands:
// ingested, normalized documents plus the filtered requirement and value
// lines.
type preparedDocuments struct {
	job     string
	company string
	resume  string

	requirements []string
	values       []string
}

func prepareDocuments(ctx context.Context, config *Config, logger *zap.Logger) (*preparedDocuments, error) {
	if config.Documents == nil {
		return nil, errors.New("documents section is required in the configuration file")
	}
	docs := config.Documents
	if docs.JobPosting == "" || docs.CompanyProfile == "" || docs.Resume == "" {
		return nil, errors.New("documents.job-posting, documents.company-profile and documents.resume are all required")
	}

	cache, err := ingest.OpenCache(config.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("opening document cache: %w", err)
	}
	defer cache.Close()

	loader := ingest.NewLoader(cache, logger)

	loaded, err := loader.Documents(ctx, docs.JobPosting, docs.CompanyProfile, docs.Resume)
	if err != nil {
		return nil, err
	}

	job, err := textproc.Normalize(loaded.JobPost)
	if err != nil {
		return nil, fmt.Errorf("normalizing job posting: %w", err)
	}
	company, err := textproc.Normalize(loaded.CompanyProfile)
	if err != nil {
		return nil, fmt.Errorf("normalizing company profile: %w", err)
	}
	resume, err := textproc.Normalize(loaded.Resume)
	if err != nil {
		return nil, fmt.Errorf("normalizing resume: %w", err)
	}

	prepared := &preparedDocuments{
		job:          job,
		company:      company,
		resume:       resume,
		requirements: textproc.ExtractRequirements(loaded.JobPost),
		values:       textproc.ExtractValues(loaded.CompanyProfile),
	}

	logger.Info("documents prepared",
		zap.Int("job_requirements", len(prepared.requirements)),
		zap.Int("company_values", len(prepared.values)),
	)

	return prepared, nil
}
