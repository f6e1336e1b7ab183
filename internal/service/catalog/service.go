package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/validator"
)

// Service сервис каталога студий и дополнительных услуг
type Service struct {
	catalogRepo       CatalogRepository
	txManager         TransactionManager
	minBookingMinutes int
	logger            Logger
}

// NewService создает новый экземпляр сервиса каталога.
// minBookingMinutes - минимальная длительность по умолчанию из политики расписания
func NewService(catalogRepo CatalogRepository, txManager TransactionManager, minBookingMinutes int, logger Logger) *Service {
	return &Service{
		catalogRepo:       catalogRepo,
		txManager:         txManager,
		minBookingMinutes: minBookingMinutes,
		logger:            logger,
	}
}

// Get возвращает текущий каталог
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context) (*models.CatalogResponse, error) {
	catalog, err := s.catalogRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCatalogNotFound) {
			s.logger.Warn("Get: catalog is empty")
			return nil, ErrCatalogNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCatalog(catalog, s.minBookingMinutes), nil
}

// Replace полностью заменяет каталог
// Доступно только администратору
func (s *Service) Replace(ctx context.Context, req *models.ReplaceCatalogRequest) (*models.CatalogResponse, error) {
	s.logger.Info("Replace: replacing catalog with %d studios and %d services", len(req.Studios), len(req.Services))

	// 1. Валидируем входные данные
	if errs := validator.Validate(req); errs != nil {
		s.logger.Warn("Replace: validation failed: %v", errs)
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, formatFieldErrors(errs))
	}

	catalog := req.ToDomainCatalog()
	normalize(catalog)

	// 2. Проверяем уникальность названий студий и id услуг
	if err := checkUnique(catalog); err != nil {
		s.logger.Warn("Replace: %v", err)
		return nil, err
	}

	// 3. Заменяем каталог в транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.catalogRepo.Replace(txCtx, catalog)
	})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateName) {
			s.logger.Warn("Replace: duplicate name rejected by storage: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDuplicateName, err)
		}
		s.logger.Error("Replace: repository error: %v", err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Replace: catalog replaced")
	return models.FromDomainCatalog(catalog, s.minBookingMinutes), nil
}

func normalize(c *domain.Catalog) {
	for i := range c.Studios {
		c.Studios[i].ID = strings.TrimSpace(c.Studios[i].ID)
		c.Studios[i].Name = strings.TrimSpace(c.Studios[i].Name)
	}
	for i := range c.Services {
		c.Services[i].ID = strings.TrimSpace(c.Services[i].ID)
		c.Services[i].Name = strings.TrimSpace(c.Services[i].Name)
	}
}

// checkUnique названия студий уникальны без учета регистра, id услуг уникальны
func checkUnique(c *domain.Catalog) error {
	studios := make(map[string]struct{}, len(c.Studios))
	for _, st := range c.Studios {
		key := strings.ToLower(st.Name)
		if _, dup := studios[key]; dup {
			return fmt.Errorf("%w: studio %q", ErrDuplicateName, st.Name)
		}
		studios[key] = struct{}{}
	}

	services := make(map[string]struct{}, len(c.Services))
	for _, sv := range c.Services {
		if _, dup := services[sv.ID]; dup {
			return fmt.Errorf("%w: service %q", ErrDuplicateName, sv.ID)
		}
		services[sv.ID] = struct{}{}
	}
	return nil
}

// formatFieldErrors "field: message; ..." в стабильном порядке
func formatFieldErrors(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + errs[f]
	}
	return strings.Join(parts, "; ")
}
