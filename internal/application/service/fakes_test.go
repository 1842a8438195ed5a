package service_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"heyday/internal/domain/caldate"
	"heyday/internal/domain/entity"
	"heyday/internal/domain/notification"
	appErrors "heyday/internal/pkg/errors"
)

// fakePlatform stands in for the device notification scheduler. It
// tracks live handles so tests can assert the single-handle invariant.
type fakePlatform struct {
	granted     bool
	scheduleErr error

	seq       int
	live      map[string]time.Time // handle -> fire instant
	payloads  map[string]notification.ReminderPayload
	scheduled int
	cancelled int
}

func newFakePlatform(granted bool) *fakePlatform {
	return &fakePlatform{
		granted:  granted,
		live:     make(map[string]time.Time),
		payloads: make(map[string]notification.ReminderPayload),
	}
}

func (p *fakePlatform) RequestPermission(ctx context.Context) bool {
	return p.granted
}

func (p *fakePlatform) Schedule(ctx context.Context, fireAt time.Time, payload notification.ReminderPayload) (string, error) {
	if p.scheduleErr != nil {
		return "", p.scheduleErr
	}
	p.seq++
	p.scheduled++
	handle := fmt.Sprintf("handle-%d", p.seq)
	p.live[handle] = fireAt
	p.payloads[handle] = payload
	return handle, nil
}

func (p *fakePlatform) Cancel(ctx context.Context, handle string) error {
	p.cancelled++
	delete(p.live, handle)
	delete(p.payloads, handle)
	return nil
}

// fakePlantRepo is an in-memory PlantRepository. Reads hand back copies
// the way a row scan would, so service-side mutations only land through
// the narrow update methods.
type fakePlantRepo struct {
	plants map[string]*entity.UserPlant
	order  []string

	scheduleErr error // forced failure of UpdateSchedule
	handleErr   error // forced failure of UpdateHandle
}

func newFakePlantRepo(plants ...*entity.UserPlant) *fakePlantRepo {
	r := &fakePlantRepo{plants: make(map[string]*entity.UserPlant)}
	for _, p := range plants {
		r.put(p)
	}
	return r
}

func (r *fakePlantRepo) put(p *entity.UserPlant) {
	cp := *p
	if _, ok := r.plants[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.plants[p.ID] = &cp
}

func (r *fakePlantRepo) get(id string) *entity.UserPlant {
	return r.plants[id]
}

func (r *fakePlantRepo) FindByID(ctx context.Context, id string) (*entity.UserPlant, error) {
	p, ok := r.plants[id]
	if !ok {
		return nil, fmt.Errorf("%w: plant %s", appErrors.ErrPlantNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlantRepo) FindByIDs(ctx context.Context, ids []string) ([]*entity.UserPlant, error) {
	var out []*entity.UserPlant
	for _, id := range ids {
		if p, ok := r.plants[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePlantRepo) FindByUserID(ctx context.Context, userID string) ([]*entity.UserPlant, error) {
	var out []*entity.UserPlant
	for _, id := range r.order {
		if p := r.plants[id]; p != nil && p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePlantRepo) FindDue(ctx context.Context, now caldate.Date) ([]*entity.UserPlant, error) {
	var out []*entity.UserPlant
	for _, id := range r.order {
		p := r.plants[id]
		if p == nil || p.NextWaterOn.IsZero() || p.NextWaterOn.After(now) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePlantRepo) Create(ctx context.Context, plant *entity.UserPlant) error {
	r.put(plant)
	return nil
}

func (r *fakePlantRepo) Update(ctx context.Context, plant *entity.UserPlant) error {
	p, ok := r.plants[plant.ID]
	if !ok {
		return fmt.Errorf("%w: plant %s", appErrors.ErrPlantNotFound, plant.ID)
	}
	p.Nickname = plant.Nickname
	p.ImageURL = plant.ImageURL
	return nil
}

func (r *fakePlantRepo) UpdateSchedule(ctx context.Context, id string, lastWateredOn, nextWaterOn caldate.Date) error {
	if r.scheduleErr != nil {
		return r.scheduleErr
	}
	p, ok := r.plants[id]
	if !ok {
		return fmt.Errorf("%w: plant %s", appErrors.ErrPlantNotFound, id)
	}
	p.LastWateredOn = lastWateredOn
	p.NextWaterOn = nextWaterOn
	return nil
}

func (r *fakePlantRepo) UpdateInterval(ctx context.Context, id string, days int) error {
	p, ok := r.plants[id]
	if !ok {
		return fmt.Errorf("%w: plant %s", appErrors.ErrPlantNotFound, id)
	}
	p.IntervalDays = days
	return nil
}

func (r *fakePlantRepo) UpdateHandle(ctx context.Context, id string, handle *string) error {
	if r.handleErr != nil {
		return r.handleErr
	}
	p, ok := r.plants[id]
	if !ok {
		return fmt.Errorf("%w: plant %s", appErrors.ErrPlantNotFound, id)
	}
	if handle == nil {
		p.PendingNotificationHandle = nil
		return nil
	}
	h := *handle
	p.PendingNotificationHandle = &h
	return nil
}

func (r *fakePlantRepo) AdvanceNextWater(ctx context.Context, id string, nextWaterOn caldate.Date) error {
	p, ok := r.plants[id]
	if !ok {
		return fmt.Errorf("%w: plant %s", appErrors.ErrPlantNotFound, id)
	}
	p.NextWaterOn = nextWaterOn
	return nil
}

func (r *fakePlantRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.plants[id]; !ok {
		return fmt.Errorf("%w: plant %s", appErrors.ErrPlantNotFound, id)
	}
	delete(r.plants, id)
	return nil
}

// fakeDeviceRepo resolves users to their active push tokens.
type fakeDeviceRepo struct {
	tokens map[string][]*entity.DeviceToken
	errs   map[string]error

	registerErr   error
	deactivateErr error

	registered  []*entity.DeviceToken
	deactivated []string
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{
		tokens: make(map[string][]*entity.DeviceToken),
		errs:   make(map[string]error),
	}
}

func (r *fakeDeviceRepo) addToken(userID, token string) {
	r.tokens[userID] = append(r.tokens[userID], &entity.DeviceToken{
		UserID: userID, Token: token, Platform: "ios", Active: true,
	})
}

func (r *fakeDeviceRepo) FindActiveByUser(ctx context.Context, userID string) ([]*entity.DeviceToken, error) {
	if err := r.errs[userID]; err != nil {
		return nil, err
	}
	return r.tokens[userID], nil
}

func (r *fakeDeviceRepo) Register(ctx context.Context, token *entity.DeviceToken) error {
	if r.registerErr != nil {
		return r.registerErr
	}
	r.registered = append(r.registered, token)
	r.tokens[token.UserID] = append(r.tokens[token.UserID], token)
	return nil
}

func (r *fakeDeviceRepo) Deactivate(ctx context.Context, token string) error {
	if r.deactivateErr != nil {
		return r.deactivateErr
	}
	r.deactivated = append(r.deactivated, token)
	for userID, tokens := range r.tokens {
		kept := tokens[:0]
		for _, t := range tokens {
			if t.Token != token {
				kept = append(kept, t)
			}
		}
		r.tokens[userID] = kept
	}
	return nil
}

// fakeGateway records every submitted batch.
type fakeGateway struct {
	batches [][]notification.PushMessage
	err     error
}

func (g *fakeGateway) SendBatch(ctx context.Context, messages []notification.PushMessage) error {
	g.batches = append(g.batches, messages)
	if g.err != nil {
		return g.err
	}
	return nil
}

// fakeSpeciesRepo is an in-memory species catalog keyed by name.
type fakeSpeciesRepo struct {
	byName map[string]*entity.Species
	nextID uint

	finds   int
	upserts int
	findErr error
}

func newFakeSpeciesRepo(species ...*entity.Species) *fakeSpeciesRepo {
	r := &fakeSpeciesRepo{byName: make(map[string]*entity.Species)}
	for _, s := range species {
		cp := *s
		r.nextID++
		cp.ID = r.nextID
		r.byName[cp.Name] = &cp
	}
	return r
}

func (r *fakeSpeciesRepo) FindByName(ctx context.Context, name string) (*entity.Species, error) {
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: name %s", appErrors.ErrSpeciesNotFound, name)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSpeciesRepo) FindByID(ctx context.Context, id uint) (*entity.Species, error) {
	for _, s := range r.byName {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", appErrors.ErrSpeciesNotFound, id)
}

func (r *fakeSpeciesRepo) Upsert(ctx context.Context, species *entity.Species) error {
	r.upserts++
	cp := *species
	if existing, ok := r.byName[cp.Name]; ok {
		cp.ID = existing.ID
	} else if cp.ID == 0 {
		r.nextID++
		cp.ID = r.nextID
	}
	r.byName[cp.Name] = &cp
	species.ID = cp.ID
	return nil
}

func (r *fakeSpeciesRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byName)), nil
}

// fakeCatalog mimics the catalog's degrade-to-name-only contract.
type fakeCatalog struct {
	species map[string]*entity.Species
	err     error
	enrichs []string
}

func newFakeCatalog(species ...*entity.Species) *fakeCatalog {
	c := &fakeCatalog{species: make(map[string]*entity.Species)}
	for _, s := range species {
		c.species[s.Name] = s
	}
	return c
}

func (c *fakeCatalog) Enrich(ctx context.Context, name string) (*entity.Species, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	c.enrichs = append(c.enrichs, normalized)
	if c.err != nil {
		return nil, c.err
	}
	if s, ok := c.species[normalized]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Species{Name: normalized}, nil
}

func (c *fakeCatalog) SeedIfEmpty(ctx context.Context) error { return nil }

func (c *fakeCatalog) Reseed(ctx context.Context) error { return nil }

// fakePlantAPI serves canned lookups.
type fakePlantAPI struct {
	species map[string]*entity.Species
	err     error
	lookups []string
}

func newFakePlantAPI() *fakePlantAPI {
	return &fakePlantAPI{species: make(map[string]*entity.Species)}
}

func (a *fakePlantAPI) Lookup(ctx context.Context, name string) (*entity.Species, error) {
	a.lookups = append(a.lookups, name)
	if a.err != nil {
		return nil, a.err
	}
	s, ok := a.species[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", appErrors.ErrSpeciesNotFound, name)
	}
	cp := *s
	return &cp, nil
}

// fakeGenerator returns canned model output and records prompts.
type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *fakeGenerator) Model() string { return "gemini-2.0-flash" }

// fakeProfileRepo is an in-memory UserProfileRepository.
type fakeProfileRepo struct {
	profiles  map[string]*entity.UserProfile
	findErr   error
	upsertErr error
	upserts   int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.UserProfile)}
}

func (r *fakeProfileRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.profiles[userID]
	if !ok {
		return nil, appErrors.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts++
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

// fakeRecRepo records persisted recommendation runs.
type fakeRecRepo struct {
	rows      []*entity.Recommendation
	createErr error
}

func (r *fakeRecRepo) CreateAll(ctx context.Context, recs []*entity.Recommendation) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows = append(r.rows, recs...)
	return nil
}

func (r *fakeRecRepo) FindByUserID(ctx context.Context, userID string, limit int) ([]*entity.Recommendation, error) {
	var out []*entity.Recommendation
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if r.rows[i].UserID == userID {
			cp := *r.rows[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeScanRepo is an in-memory ScanRepository.
type fakeScanRepo struct {
	sessions     map[string]*entity.ScanSession
	sessionOrder []string
	artifacts    map[string]*entity.ScanArtifact
	jobs         []*entity.ProcessingJob
	nextArtID    uint
	nextJobID    uint
	statusErr    error
	saveArtErr   error
}

func newFakeScanRepo() *fakeScanRepo {
	return &fakeScanRepo{
		sessions:  make(map[string]*entity.ScanSession),
		artifacts: make(map[string]*entity.ScanArtifact),
	}
}

func (r *fakeScanRepo) CreateSession(ctx context.Context, session *entity.ScanSession) error {
	cp := *session
	r.sessions[session.ID] = &cp
	r.sessionOrder = append(r.sessionOrder, session.ID)
	return nil
}

func (r *fakeScanRepo) FindSessionByID(ctx context.Context, id string) (*entity.ScanSession, error) {
	stored, ok := r.sessions[id]
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	cp := *stored
	cp.Artifacts = nil
	for _, a := range r.artifacts {
		if a.SessionID == id {
			cp.Artifacts = append(cp.Artifacts, *a)
		}
	}
	cp.Jobs = nil
	for _, j := range r.jobs {
		if j.SessionID == id {
			cp.Jobs = append(cp.Jobs, *j)
		}
	}
	return &cp, nil
}

func (r *fakeScanRepo) FindSessionsByUser(ctx context.Context, userID string) ([]*entity.ScanSession, error) {
	var out []*entity.ScanSession
	for i := len(r.sessionOrder) - 1; i >= 0; i-- {
		if s := r.sessions[r.sessionOrder[i]]; s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeScanRepo) UpdateSessionStatus(ctx context.Context, id string, status, message string) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	stored, ok := r.sessions[id]
	if !ok {
		return appErrors.ErrSessionNotFound
	}
	stored.Status = status
	stored.Message = message
	return nil
}

func (r *fakeScanRepo) FindArtifactByToken(ctx context.Context, token string) (*entity.ScanArtifact, error) {
	a, ok := r.artifacts[token]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeScanRepo) SaveArtifact(ctx context.Context, artifact *entity.ScanArtifact) error {
	if r.saveArtErr != nil {
		return r.saveArtErr
	}
	if artifact.ID == 0 {
		r.nextArtID++
		artifact.ID = r.nextArtID
	}
	cp := *artifact
	r.artifacts[artifact.UploadToken] = &cp
	return nil
}

func (r *fakeScanRepo) FindJobBySession(ctx context.Context, sessionID string) (*entity.ProcessingJob, error) {
	for i := len(r.jobs) - 1; i >= 0; i-- {
		if r.jobs[i].SessionID == sessionID {
			cp := *r.jobs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeScanRepo) CreateJob(ctx context.Context, job *entity.ProcessingJob) error {
	r.nextJobID++
	job.ID = r.nextJobID
	cp := *job
	r.jobs = append(r.jobs, &cp)
	return nil
}

func (r *fakeScanRepo) UpdateJob(ctx context.Context, job *entity.ProcessingJob) error {
	for i, stored := range r.jobs {
		if stored.ID == job.ID {
			cp := *job
			r.jobs[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("job %d not found", job.ID)
}
