package epic

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// estimateConcurrency bounds the number of assemblies estimated in
// parallel.
const estimateConcurrency = 4

// BuiltAsset combines assemblies into a whole building or any larger
// scope of work.
type BuiltAsset struct {
	Name       string      `json:"name"`
	Comments   string      `json:"comments,omitempty"`
	Assemblies []*Assembly `json:"assemblies"`
}

// AssetEstimate holds the embodied flows of a built asset over a design
// life, with per-assembly detail and per-category totals.
type AssetEstimate struct {
	Name       string    `json:"name"`
	Comments   string    `json:"comments,omitempty"`
	DesignLife float64   `json:"design_life"`
	Flows      LifeCycle `json:"flows"`

	Assemblies []*Estimate `json:"assemblies"`

	// Categories sums the life cycle flows of assemblies sharing a
	// category.
	Categories map[string]Flows `json:"categories"`
}

// Estimate computes the embodied flows of every assembly over the given
// design life in years and sums them into asset totals.
func (b *BuiltAsset) Estimate(designLife float64) *AssetEstimate {
	estimates := make([]*Estimate, len(b.Assemblies))
	for i, assembly := range b.Assemblies {
		estimates[i] = assembly.Estimate(designLife)
	}
	return b.Combine(designLife, estimates)
}

// EstimateConcurrently estimates the assemblies in parallel and combines
// the results. It stops early when the context is cancelled.
func (b *BuiltAsset) EstimateConcurrently(ctx context.Context, designLife float64) (*AssetEstimate, error) {
	errg, errgctx := errgroup.WithContext(ctx)
	errg.SetLimit(estimateConcurrency)

	estimates := make([]*Estimate, len(b.Assemblies))
	for i, assembly := range b.Assemblies {
		errg.Go(func() error {
			select {
			case <-errgctx.Done():
				return errgctx.Err()
			default:
			}
			estimates[i] = assembly.Estimate(designLife)
			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return nil, err
	}

	return b.Combine(designLife, estimates), nil
}

// Combine sums already computed per-assembly estimates into an asset
// estimate. The slice order must match b.Assemblies.
func (b *BuiltAsset) Combine(designLife float64, estimates []*Estimate) *AssetEstimate {
	assetEstimate := &AssetEstimate{
		Name:       b.Name,
		Comments:   b.Comments,
		DesignLife: designLife,
		Assemblies: estimates,
		Categories: make(map[string]Flows),
	}

	for _, estimate := range estimates {
		assetEstimate.Flows = assetEstimate.Flows.Add(estimate.Flows)
		category := assetEstimate.Categories[estimate.Category]
		assetEstimate.Categories[estimate.Category] = category.Add(estimate.Flows.Total())
	}

	return assetEstimate
}
