package handler_test

import (
	"context"
	"io"

	"heyday/internal/application/dto"
)

// The handler tests fake each service with settable call fields; a
// call with no behavior set is a wiring bug, so it panics.

type fakeCollectionService struct {
	addPlant    func(ctx context.Context, userID string, req dto.AddPlantRequest) (dto.PlantResponse, error)
	listPlants  func(ctx context.Context, userID string) ([]dto.PlantResponse, error)
	getPlant    func(ctx context.Context, userID, plantID string) (dto.PlantResponse, error)
	updatePlant func(ctx context.Context, userID, plantID string, req dto.UpdatePlantRequest) (dto.PlantResponse, error)
	removePlant func(ctx context.Context, userID, plantID string) error
}

func (f *fakeCollectionService) AddPlant(ctx context.Context, userID string, req dto.AddPlantRequest) (dto.PlantResponse, error) {
	if f.addPlant == nil {
		panic("unexpected AddPlant call")
	}
	return f.addPlant(ctx, userID, req)
}

func (f *fakeCollectionService) ListPlants(ctx context.Context, userID string) ([]dto.PlantResponse, error) {
	if f.listPlants == nil {
		panic("unexpected ListPlants call")
	}
	return f.listPlants(ctx, userID)
}

func (f *fakeCollectionService) GetPlant(ctx context.Context, userID, plantID string) (dto.PlantResponse, error) {
	if f.getPlant == nil {
		panic("unexpected GetPlant call")
	}
	return f.getPlant(ctx, userID, plantID)
}

func (f *fakeCollectionService) UpdatePlant(ctx context.Context, userID, plantID string, req dto.UpdatePlantRequest) (dto.PlantResponse, error) {
	if f.updatePlant == nil {
		panic("unexpected UpdatePlant call")
	}
	return f.updatePlant(ctx, userID, plantID, req)
}

func (f *fakeCollectionService) RemovePlant(ctx context.Context, userID, plantID string) error {
	if f.removePlant == nil {
		panic("unexpected RemovePlant call")
	}
	return f.removePlant(ctx, userID, plantID)
}

type fakeWateringService struct {
	water       func(ctx context.Context, userID, plantID string) (dto.WaterResponse, error)
	setInterval func(ctx context.Context, userID, plantID string, days int) (dto.PlantResponse, error)
	resync      func(ctx context.Context, userID string, plantIDs []string) (dto.ResyncResponse, error)
	granted     bool
}

func (f *fakeWateringService) WaterPlantNow(ctx context.Context, userID, plantID string) (dto.WaterResponse, error) {
	if f.water == nil {
		panic("unexpected WaterPlantNow call")
	}
	return f.water(ctx, userID, plantID)
}

func (f *fakeWateringService) SetWateringInterval(ctx context.Context, userID, plantID string, days int) (dto.PlantResponse, error) {
	if f.setInterval == nil {
		panic("unexpected SetWateringInterval call")
	}
	return f.setInterval(ctx, userID, plantID, days)
}

func (f *fakeWateringService) ResyncAllReminders(ctx context.Context, userID string, plantIDs []string) (dto.ResyncResponse, error) {
	if f.resync == nil {
		panic("unexpected ResyncAllReminders call")
	}
	return f.resync(ctx, userID, plantIDs)
}

func (f *fakeWateringService) PermissionGranted(ctx context.Context) bool {
	return f.granted
}

type fakeScanService struct {
	createSession   func(ctx context.Context, userID string, req dto.CreateScanRequest) (dto.ScanSessionResponse, error)
	getSession      func(ctx context.Context, userID, sessionID string) (dto.ScanSessionResponse, error)
	listSessions    func(ctx context.Context, userID string) ([]dto.ScanSessionResponse, error)
	saveChunk       func(ctx context.Context, userID, sessionID string, req dto.ArtifactChunkRequest, data io.Reader) (dto.UploadArtifactResponse, error)
	startProcessing func(ctx context.Context, userID, sessionID string, autoComplete bool) (dto.StartProcessingResponse, error)
}

func (f *fakeScanService) CreateSession(ctx context.Context, userID string, req dto.CreateScanRequest) (dto.ScanSessionResponse, error) {
	if f.createSession == nil {
		panic("unexpected CreateSession call")
	}
	return f.createSession(ctx, userID, req)
}

func (f *fakeScanService) GetSession(ctx context.Context, userID, sessionID string) (dto.ScanSessionResponse, error) {
	if f.getSession == nil {
		panic("unexpected GetSession call")
	}
	return f.getSession(ctx, userID, sessionID)
}

func (f *fakeScanService) ListSessions(ctx context.Context, userID string) ([]dto.ScanSessionResponse, error) {
	if f.listSessions == nil {
		panic("unexpected ListSessions call")
	}
	return f.listSessions(ctx, userID)
}

func (f *fakeScanService) SaveArtifactChunk(ctx context.Context, userID, sessionID string, req dto.ArtifactChunkRequest, data io.Reader) (dto.UploadArtifactResponse, error) {
	if f.saveChunk == nil {
		panic("unexpected SaveArtifactChunk call")
	}
	return f.saveChunk(ctx, userID, sessionID, req, data)
}

func (f *fakeScanService) StartProcessing(ctx context.Context, userID, sessionID string, autoComplete bool) (dto.StartProcessingResponse, error) {
	if f.startProcessing == nil {
		panic("unexpected StartProcessing call")
	}
	return f.startProcessing(ctx, userID, sessionID, autoComplete)
}

func (f *fakeScanService) CompleteProcessing(ctx context.Context, sessionID string, ok bool, message string) error {
	panic("unexpected CompleteProcessing call")
}
