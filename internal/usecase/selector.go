package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/citynorm"
)

type candidateSelector struct {
	employers  domain.EmployerRepository
	applicants domain.ApplicantRepository
	now        func() time.Time
}

func NewCandidateSelector(employers domain.EmployerRepository, applicants domain.ApplicantRepository) domain.CandidateSelector {
	return &candidateSelector{
		employers:  employers,
		applicants: applicants,
		now:        time.Now,
	}
}

// SelectNext walks the tiers in order and returns the first profile found,
// or nil when every tier is empty.
func (s *candidateSelector) SelectNext(ctx context.Context, applicantUserID int64) (*domain.EmployerProfile, error) {
	applicant, err := s.applicants.GetByUserID(ctx, applicantUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("select next: %w", domain.ErrStaleProfile)
		}
		return nil, err
	}

	now := s.now()
	for _, f := range candidateTiers(citynorm.Key(applicant.City)) {
		f.ApplicantUserID = applicantUserID
		f.Now = now
		p, err := s.employers.PickCandidate(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("select next: %w", err)
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, nil
}

func candidateTiers(city string) []domain.CandidateFilter {
	if city == "" {
		return []domain.CandidateFilter{
			{Match: domain.CityAny},
			{Match: domain.CityAny, Dummy: true},
		}
	}
	return []domain.CandidateFilter{
		{City: city, Match: domain.CitySame},
		{City: city, Match: domain.CityOther},
		{City: city, Match: domain.CitySame, Dummy: true},
		{City: city, Match: domain.CityOther, Dummy: true},
	}
}
