package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/company/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Profile, error) {
	profile, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile == nil {
		return domain.Profile{}, domain.ErrNotFound
	}
	return *profile, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateProfileRequest) (domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Profile{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	profile, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return domain.Profile{}, err
	}
	inserting := profile == nil
	if inserting {
		profile = &domain.Profile{
			ID:        s.genID.Generate(),
			CreatedAt: now,
		}
	}

	profile.Name = name
	profile.Address = strings.TrimSpace(req.Address)
	profile.Email = strings.TrimSpace(req.Email)
	profile.Phone = strings.TrimSpace(req.Phone)
	profile.Website = strings.TrimSpace(req.Website)
	profile.TaxID = strings.TrimSpace(req.TaxID)
	profile.BankName = strings.TrimSpace(req.BankName)
	profile.BankAccountHolder = strings.TrimSpace(req.BankAccountHolder)
	profile.BankAccountNumber = strings.TrimSpace(req.BankAccountNumber)
	profile.BankIFSC = strings.TrimSpace(req.BankIFSC)
	profile.BankBranch = strings.TrimSpace(req.BankBranch)
	profile.BankSwiftCode = strings.TrimSpace(req.BankSwiftCode)
	profile.UpdatedAt = now

	if inserting {
		if err := s.repo.Insert(ctx, s.db, profile); err != nil {
			return domain.Profile{}, err
		}
	} else {
		if err := s.repo.Update(ctx, s.db, profile); err != nil {
			return domain.Profile{}, err
		}
	}

	return *profile, nil
}
