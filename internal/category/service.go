package category

import "log/slog"

type RepositoryAPI interface {
	GetAll() ([]*Category, error)
	GetByName(name string) (*Category, error)
	Create(category *Category) error
	Seed(defaults []*Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllCategories() ([]CategoryResponse, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, err
	}

	var responses []CategoryResponse
	for _, c := range categories {
		if c.IsActive {
			responses = append(responses, c.ToResponse())
		}
	}
	return responses, nil
}

func (s *Service) IsValidCategory(name string) bool {
	c, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Warn("error checking category validity", "name", name, "error", err)
		return false
	}
	return c != nil && c.IsActive
}

// EnsureDefaults seeds the fixed roster, skipping names already present.
func (s *Service) EnsureDefaults() error {
	if err := s.repo.Seed(Defaults()); err != nil {
		s.logger.Error("failed to seed categories", "error", err)
		return err
	}
	return nil
}
