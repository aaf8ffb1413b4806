package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"hidingbook/internal/cache"
	"hidingbook/internal/client/rook"
	"hidingbook/internal/config"
	"hidingbook/internal/models"
	"hidingbook/internal/normalize"
)

type RegistryService struct {
	Source IdentitySource
	Manual []config.ManualAddress
	Memo   *cache.Memo
	TTL    time.Duration
}

// Load builds the known-address registry from market makers, keepers and the
// configured manual list, in that order. The first list naming an address
// wins.
func (s *RegistryService) Load(ctx context.Context) (*models.Registry, error) {
	entries, err := cache.Do(ctx, s.Memo, "registry", s.TTL, nil, func(ctx context.Context) ([]models.KnownAddress, error) {
		var makers, keepers []rook.Identity
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			makers, err = s.Source.MarketMakers(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			keepers, err = s.Source.Keepers(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		reg := models.NewRegistry(
			normalize.Identities(makers, models.AddressMarketMaker),
			normalize.Identities(keepers, models.AddressKeeper),
			s.manual(),
		)
		return reg.All(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return models.NewRegistry(entries), nil
}

func (s *RegistryService) manual() []models.KnownAddress {
	out := make([]models.KnownAddress, 0, len(s.Manual))
	for _, m := range s.Manual {
		out = append(out, models.KnownAddress{
			Address: m.Address,
			Name:    m.Name,
			Type:    models.ParseAddressType(m.Type),
		})
	}
	return out
}
