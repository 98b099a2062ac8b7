package biz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lk2023060901/assistant-admin/internal/assistant/gateway"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
)

// fakeRepo is an ordered in-memory AssistantRepo
type fakeRepo struct {
	mu      sync.Mutex
	order   []string
	records map[string]types.Assistant
	writes  int

	failRekey error
	failSave  error
}

func newFakeRepo(records ...*types.Assistant) *fakeRepo {
	r := &fakeRepo{records: map[string]types.Assistant{}}
	for _, a := range records {
		r.order = append(r.order, a.ID)
		r.records[a.ID] = *a
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, a *types.Assistant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[a.ID]; ok {
		return ErrAssistantExists
	}
	r.order = append(r.order, a.ID)
	r.records[a.ID] = *a
	r.writes++
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*types.Assistant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.records[id]
	if !ok {
		return nil, ErrAssistantNotFound
	}
	return &a, nil
}

func (r *fakeRepo) List(context.Context) ([]*types.Assistant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*types.Assistant, 0, len(r.order))
	for _, id := range r.order {
		a := r.records[id]
		list = append(list, &a)
	}
	return list, nil
}

func (r *fakeRepo) Update(_ context.Context, a *types.Assistant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[a.ID]; !ok {
		return ErrAssistantNotFound
	}
	r.records[a.ID] = *a
	r.writes++
	return nil
}

func (r *fakeRepo) Save(ctx context.Context, a *types.Assistant) (types.SaveResult, error) {
	if r.failSave != nil {
		return 0, r.failSave
	}
	if _, err := r.GetByID(ctx, a.ID); err == nil {
		return types.SaveUpdated, r.Update(ctx, a)
	}
	return types.SaveCreated, r.Create(ctx, a)
}

func (r *fakeRepo) Rekey(_ context.Context, oldID string, a *types.Assistant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failRekey != nil {
		return r.failRekey
	}
	if _, ok := r.records[oldID]; !ok {
		return ErrAssistantNotFound
	}
	if _, ok := r.records[a.ID]; ok {
		return ErrAssistantExists
	}
	delete(r.records, oldID)
	r.records[a.ID] = *a
	for i, id := range r.order {
		if id == oldID {
			r.order[i] = a.ID
		}
	}
	r.writes++
	return nil
}

func (r *fakeRepo) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// fakeGateway records calls and serves a fixed remote inventory
type fakeGateway struct {
	mu         sync.Mutex
	models     []types.RemoteModel
	assistants []types.RemoteAssistant

	listErr   error
	modelsErr error
	createErr map[string]error // keyed by assistant name
	updateErr error
	nextID    int

	modelCalls  int
	listCalls   int
	createCalls []types.AssistantFields
	updateCalls []string
}

func (g *fakeGateway) ListModels(context.Context) ([]types.RemoteModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.modelCalls++
	if g.modelsErr != nil {
		return nil, g.modelsErr
	}
	return append([]types.RemoteModel(nil), g.models...), nil
}

func (g *fakeGateway) ListAssistants(context.Context) ([]types.RemoteAssistant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]types.RemoteAssistant(nil), g.assistants...), nil
}

func (g *fakeGateway) CreateAssistant(_ context.Context, f types.AssistantFields) (*types.RemoteAssistant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls = append(g.createCalls, f)
	if err := g.createErr[f.Name]; err != nil {
		return nil, err
	}
	g.nextID++
	remote := types.RemoteAssistant{
		ID:           fmt.Sprintf("asst_new_%d", g.nextID),
		Name:         f.Name,
		Description:  f.Description,
		Model:        f.Model,
		Temperature:  f.Temperature,
		TopP:         f.TopP,
		Instructions: f.Instructions,
	}
	g.assistants = append(g.assistants, remote)
	return &remote, nil
}

func (g *fakeGateway) UpdateAssistant(_ context.Context, id string, f types.AssistantFields) (*types.RemoteAssistant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updateCalls = append(g.updateCalls, id)
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return &types.RemoteAssistant{ID: id, Name: f.Name, Model: f.Model}, nil
}

func (g *fakeGateway) totalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modelCalls + g.listCalls + len(g.createCalls) + len(g.updateCalls)
}

// missingCredentialGateway fails every call the way the real gateway does without a key
type missingCredentialGateway struct{}

func (missingCredentialGateway) ListModels(context.Context) ([]types.RemoteModel, error) {
	return nil, gateway.ErrMissingCredential
}

func (missingCredentialGateway) ListAssistants(context.Context) ([]types.RemoteAssistant, error) {
	return nil, gateway.ErrMissingCredential
}

func (missingCredentialGateway) CreateAssistant(context.Context, types.AssistantFields) (*types.RemoteAssistant, error) {
	return nil, gateway.ErrMissingCredential
}

func (missingCredentialGateway) UpdateAssistant(context.Context, string, types.AssistantFields) (*types.RemoteAssistant, error) {
	return nil, gateway.ErrMissingCredential
}

type fakeRunRepo struct {
	runs []*types.SyncRun
	err  error
}

func (r *fakeRunRepo) Create(_ context.Context, run *types.SyncRun) error {
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, run)
	return nil
}

func (r *fakeRunRepo) ListRecent(_ context.Context, limit int) ([]*types.SyncRun, error) {
	if limit > len(r.runs) {
		limit = len(r.runs)
	}
	return r.runs[:limit], nil
}

type fakeSettingsRepo struct {
	settings types.Settings
	err      error
}

func (r *fakeSettingsRepo) Get(context.Context) (*types.Settings, error) {
	if r.err != nil {
		return nil, r.err
	}
	s := r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *types.Settings) error {
	r.settings = *s
	return nil
}

type memoryModelCache struct {
	models      []types.RemoteModel
	ok          bool
	invalidated int
}

func (c *memoryModelCache) Get(context.Context) ([]types.RemoteModel, bool, error) {
	return c.models, c.ok, nil
}

func (c *memoryModelCache) Set(_ context.Context, m []types.RemoteModel) error {
	c.models, c.ok = m, true
	return nil
}

func (c *memoryModelCache) Invalidate(context.Context) error {
	c.models, c.ok = nil, false
	c.invalidated++
	return nil
}

var errRemoteDown = &gateway.RemoteError{Op: "create assistant", StatusCode: 500, Err: errors.New("boom")}
