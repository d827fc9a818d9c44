package service_test

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	appErrors "github.com/agenciacriadores/crm-backend/internal/errors"
	"github.com/agenciacriadores/crm-backend/internal/model"
	"github.com/agenciacriadores/crm-backend/internal/repository"
)

// fakeRepo reproduces the stored-procedure semantics in memory so the
// manager tests can exercise the full validate/repair/mutate cycle.
type fakeRepo struct {
	mu           sync.Mutex
	campaigns    map[string]*model.Campaign
	assignments  map[string][]*model.Assignment
	creatorNames map[string]string

	failFix  bool
	fixCalls int
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		campaigns:    map[string]*model.Campaign{},
		assignments:  map[string][]*model.Assignment{},
		creatorNames: map[string]string{},
	}
}

func (f *fakeRepo) addCampaign(c *model.Campaign) {
	f.campaigns[c.ID] = c
}

func (f *fakeRepo) addAssignment(campaignID, creatorID, name string) {
	f.creatorNames[creatorID] = name
	rows := f.assignments[campaignID]
	f.assignments[campaignID] = append(rows, &model.Assignment{
		ID:          f.newID(),
		CampaignID:  campaignID,
		CreatorID:   strPtr(creatorID),
		CreatorName: name,
		SlotIndex:   len(rows),
		Status:      model.AssignmentAtivo,
	})
}

func (f *fakeRepo) newID() string {
	f.nextID++
	return fmt.Sprintf("row-%d", f.nextID)
}

// activeRows returns non-removed rows ordered by slot_index, matching the
// real repository's ORDER BY.
func (f *fakeRepo) activeRows(campaignID string) []*model.Assignment {
	active := []*model.Assignment{}
	for _, a := range f.assignments[campaignID] {
		if a.Status != model.AssignmentRemovido {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SlotIndex < active[j].SlotIndex
	})
	return active
}

func (f *fakeRepo) GetByID(id string) (*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFoundByID(id)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) GetByBusinessMonth(businessName, month string) (*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.campaigns {
		if strings.EqualFold(c.BusinessName, businessName) && c.Month == month {
			cp := *c
			return &cp, nil
		}
	}
	return nil, appErrors.NewCampaignNotFound(businessName, month)
}

func (f *fakeRepo) ListAssignments(campaignID string) ([]*model.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeRows(campaignID), nil
}

func (f *fakeRepo) CountAssignments(campaignID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.activeRows(campaignID)), nil
}

func (f *fakeRepo) AddCreator(campaignID, creatorID, userEmail string, increaseSlots bool) (*model.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[campaignID]
	if !ok {
		return &model.MutationResult{Success: false, Message: "campanha não encontrada"}, nil
	}

	for _, a := range f.activeRows(campaignID) {
		if a.CreatorID != nil && *a.CreatorID == creatorID {
			return &model.MutationResult{Success: false, NewQuantidade: c.QuantidadeCriadores, Message: "criador já está na campanha"}, nil
		}
	}

	// claim a placeholder row first
	for _, a := range f.activeRows(campaignID) {
		if a.CreatorID == nil {
			a.CreatorID = strPtr(creatorID)
			a.CreatorName = f.creatorName(creatorID)
			return &model.MutationResult{Success: true, NewQuantidade: c.QuantidadeCriadores, Message: "criador adicionado em slot reservado"}, nil
		}
	}

	real := len(f.activeRows(campaignID))
	if real >= c.QuantidadeCriadores && !increaseSlots {
		return &model.MutationResult{Success: false, NewQuantidade: c.QuantidadeCriadores, Message: "não há slot vago na campanha"}, nil
	}

	f.assignments[campaignID] = append(f.assignments[campaignID], &model.Assignment{
		ID:          f.newID(),
		CampaignID:  campaignID,
		CreatorID:   strPtr(creatorID),
		CreatorName: f.creatorName(creatorID),
		SlotIndex:   real,
		Status:      model.AssignmentAtivo,
	})
	if real+1 > c.QuantidadeCriadores {
		c.QuantidadeCriadores = real + 1
	}
	return &model.MutationResult{Success: true, NewQuantidade: c.QuantidadeCriadores, Message: "criador adicionado"}, nil
}

func (f *fakeRepo) RemoveCreator(campaignID, creatorID, userEmail string, deleteLine bool) (*model.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[campaignID]
	if !ok {
		return &model.MutationResult{Success: false, Message: "campanha não encontrada"}, nil
	}

	for _, a := range f.activeRows(campaignID) {
		if a.CreatorID != nil && *a.CreatorID == creatorID {
			a.Status = model.AssignmentRemovido
			if deleteLine {
				if c.QuantidadeCriadores > 0 {
					c.QuantidadeCriadores--
				}
				return &model.MutationResult{Success: true, NewQuantidade: c.QuantidadeCriadores, Message: "criador removido e slot excluído"}, nil
			}
			f.assignments[campaignID] = append(f.assignments[campaignID], &model.Assignment{
				ID:          f.newID(),
				CampaignID:  campaignID,
				CreatorID:   nil,
				CreatorName: model.PlaceholderCreator,
				SlotIndex:   a.SlotIndex,
				Status:      model.AssignmentAtivo,
			})
			return &model.MutationResult{Success: true, NewQuantidade: c.QuantidadeCriadores, Message: "criador removido, slot mantido"}, nil
		}
	}
	return &model.MutationResult{Success: false, NewQuantidade: c.QuantidadeCriadores, Message: "criador não está na campanha"}, nil
}

func (f *fakeRepo) SwapCreator(campaignID, oldCreatorID, newCreatorID, userEmail string) (*model.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.campaigns[campaignID]
	if !ok {
		return &model.MutationResult{Success: false, Message: "campanha não encontrada"}, nil
	}

	// mirror trocar_criador_campanha: missing old creator is reported
	// before a duplicate new creator
	var oldRow *model.Assignment
	for _, a := range f.activeRows(campaignID) {
		if a.CreatorID != nil && *a.CreatorID == oldCreatorID {
			oldRow = a
		}
	}
	if oldRow == nil {
		return &model.MutationResult{Success: false, NewQuantidade: c.QuantidadeCriadores, Message: "criador antigo não encontrado na campanha"}, nil
	}
	for _, a := range f.activeRows(campaignID) {
		if a.CreatorID != nil && *a.CreatorID == newCreatorID {
			return &model.MutationResult{Success: false, NewQuantidade: c.QuantidadeCriadores, Message: "novo criador já está na campanha"}, nil
		}
	}

	// remove + insert as one unit; the new row takes the old ordinal
	oldRow.Status = model.AssignmentRemovido
	f.assignments[campaignID] = append(f.assignments[campaignID], &model.Assignment{
		ID:          f.newID(),
		CampaignID:  campaignID,
		CreatorID:   strPtr(newCreatorID),
		CreatorName: f.creatorName(newCreatorID),
		SlotIndex:   oldRow.SlotIndex,
		Status:      model.AssignmentAtivo,
	})

	return &model.MutationResult{Success: true, NewQuantidade: c.QuantidadeCriadores, Message: "troca realizada"}, nil
}

func (f *fakeRepo) FixQuantity(campaignID string) (*model.RepairResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fixCalls++
	if f.failFix {
		return nil, fmt.Errorf("fix_quantidade_criadores failed: connection reset")
	}

	c, ok := f.campaigns[campaignID]
	if !ok {
		return nil, appErrors.NewCampaignNotFoundByID(campaignID)
	}

	real := len(f.activeRows(campaignID))
	if real == c.QuantidadeCriadores {
		return &model.RepairResult{Fixed: false, OldQuantity: c.QuantidadeCriadores, NewQuantity: c.QuantidadeCriadores, RealCreatorCount: real}, nil
	}

	old := c.QuantidadeCriadores
	c.QuantidadeCriadores = real
	return &model.RepairResult{Fixed: true, OldQuantity: old, NewQuantity: real, RealCreatorCount: real}, nil
}

func (f *fakeRepo) GetCampaignStats(campaignID string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := map[string]int{"total": 0}
	for _, a := range f.activeRows(campaignID) {
		if a.CreatorID != nil {
			stats["total"]++
		}
	}
	return stats, nil
}

func (f *fakeRepo) creatorName(id string) string {
	if name, ok := f.creatorNames[id]; ok {
		return name
	}
	return id
}

var _ repository.CampaignRepositoryInterface = (*fakeRepo)(nil)
