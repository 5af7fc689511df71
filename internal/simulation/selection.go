package simulation

import "myshop/internal/domain"

// ApplySelection replaces the selection of rec with ids and re-derives the
// Selected flag of every grouped asset. Ids that match no asset are kept in
// the set but never flag anything. The resulting set is returned sorted.
func ApplySelection(rec *domain.Ingestion, ids []string) []string {
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}
	rec.SelectedAssetIDs = selected
	for g := range rec.AssetGroups {
		assets := rec.AssetGroups[g].Assets
		for a := range assets {
			_, ok := selected[assets[a].ID]
			assets[a].Selected = ok
		}
	}
	return rec.SelectedIDs()
}

// flaggedAssetIDs lists the ids of every asset whose Selected flag is set.
func flaggedAssetIDs(rec *domain.Ingestion) []string {
	var ids []string
	for _, group := range rec.AssetGroups {
		for _, asset := range group.Assets {
			if asset.Selected {
				ids = append(ids, asset.ID)
			}
		}
	}
	return ids
}
