package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"floorplan/internal/floorplan/capture"
	"floorplan/internal/floorplan/editor"
	"floorplan/internal/floorplan/export"
	"floorplan/internal/floorplan/models"
	"floorplan/internal/floorplan/storage"
	"floorplan/internal/floorplan/store"
)

// DefaultProjectName is used when a create or reset request names nothing.
const DefaultProjectName = "New Floor Plan"

// ============================================================
// Project Handler
// ============================================================

type ProjectHandler struct {
	manager *store.Manager
	files   *storage.FileStorage
	device  capture.Device
}

func NewProjectHandler(manager *store.Manager, files *storage.FileStorage, device capture.Device) *ProjectHandler {
	return &ProjectHandler{
		manager: manager,
		files:   files,
		device:  device,
	}
}

// Register mounts every project route on r.
func (h *ProjectHandler) Register(r fiber.Router) {
	r.Get("/projects", h.ListProjects)
	r.Post("/projects", h.CreateProject)
	r.Post("/projects/import", h.ImportProject)
	r.Get("/projects/current", h.GetCurrent)
	r.Put("/projects/current/:id", h.SetCurrent)
	r.Get("/projects/:id", h.GetProject)
	r.Delete("/projects/:id", h.DeleteProject)

	r.Post("/projects/:id/rooms", h.AddRoom)
	r.Put("/projects/:id/rooms/:roomId", h.UpdateRoom)
	r.Delete("/projects/:id/rooms/:roomId", h.DeleteRoom)
	r.Post("/projects/:id/doors", h.AddDoor)
	r.Put("/projects/:id/doors/:doorId", h.UpdateDoor)
	r.Delete("/projects/:id/doors/:doorId", h.DeleteDoor)
	r.Post("/projects/:id/windows", h.AddWindow)
	r.Put("/projects/:id/windows/:windowId", h.UpdateWindow)
	r.Delete("/projects/:id/windows/:windowId", h.DeleteWindow)

	r.Post("/projects/:id/undo", h.Undo)
	r.Post("/projects/:id/redo", h.Redo)
	r.Post("/projects/:id/reset", h.Reset)
	r.Post("/projects/:id/scans", h.AddScan)

	r.Get("/projects/:id/export/:format", h.DownloadExport)
	r.Post("/projects/:id/export/:format", h.SaveExport)
}

type nameRequest struct {
	Name string `json:"name"`
}

type scanRequest struct {
	Name     string            `json:"name"`
	Snapshot *capture.Snapshot `json:"snapshot"`
}

type historyResponse struct {
	Project models.Project `json:"project"`
	Applied bool           `json:"applied"`
	CanUndo bool           `json:"canUndo"`
	CanRedo bool           `json:"canRedo"`
}

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// nameFrom reads an optional {"name": ...} body.
func nameFrom(c fiber.Ctx) (string, bool) {
	var req nameRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return "", false
		}
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultProjectName
	}
	return name, true
}

func (h *ProjectHandler) session(c fiber.Ctx) (*editor.Session, error) {
	return h.manager.Session(c.Params("id"))
}

// ============================================================
// Projects
// ============================================================

func (h *ProjectHandler) ListProjects(c fiber.Ctx) error {
	return c.JSON(h.manager.Projects())
}

func (h *ProjectHandler) CreateProject(c fiber.Ctx) error {
	name, ok := nameFrom(c)
	if !ok {
		return writeError(c, errInvalidJSON)
	}
	p := h.manager.CreateProject(context.Background(), name)
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProjectHandler) GetProject(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.Project())
}

func (h *ProjectHandler) DeleteProject(c fiber.Ctx) error {
	if err := h.manager.DeleteProject(context.Background(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProjectHandler) GetCurrent(c fiber.Ctx) error {
	p, ok := h.manager.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no current project"})
	}
	return c.JSON(p)
}

func (h *ProjectHandler) SetCurrent(c fiber.Ctx) error {
	if err := h.manager.SetCurrent(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	p, _ := h.manager.Current()
	return c.JSON(p)
}

// ImportProject takes a raw project JSON document as the body.
func (h *ProjectHandler) ImportProject(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return writeError(c, errEmptyBody)
	}
	p, err := h.manager.ImportProject(context.Background(), c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

// ============================================================
// Rooms, doors, windows
// ============================================================

func (h *ProjectHandler) AddRoom(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	var draft models.RoomDraft
	if err := decodeBody(c, &draft); err != nil {
		return writeError(c, err)
	}
	room, err := s.AddRoom(draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

func (h *ProjectHandler) UpdateRoom(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	var draft models.RoomDraft
	if err := decodeBody(c, &draft); err != nil {
		return writeError(c, err)
	}
	room, err := s.UpdateRoom(c.Params("roomId"), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(room)
}

func (h *ProjectHandler) DeleteRoom(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.DeleteRoom(c.Params("roomId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProjectHandler) AddDoor(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	var draft models.DoorDraft
	if err := decodeBody(c, &draft); err != nil {
		return writeError(c, err)
	}
	door, err := s.AddDoor(draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(door)
}

func (h *ProjectHandler) UpdateDoor(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	var draft models.DoorDraft
	if err := decodeBody(c, &draft); err != nil {
		return writeError(c, err)
	}
	door, err := s.UpdateDoor(c.Params("doorId"), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(door)
}

func (h *ProjectHandler) DeleteDoor(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.DeleteDoor(c.Params("doorId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProjectHandler) AddWindow(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	var draft models.WindowDraft
	if err := decodeBody(c, &draft); err != nil {
		return writeError(c, err)
	}
	window, err := s.AddWindow(draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(window)
}

func (h *ProjectHandler) UpdateWindow(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	var draft models.WindowDraft
	if err := decodeBody(c, &draft); err != nil {
		return writeError(c, err)
	}
	window, err := s.UpdateWindow(c.Params("windowId"), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(window)
}

func (h *ProjectHandler) DeleteWindow(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.DeleteWindow(c.Params("windowId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================
// History
// ============================================================

func (h *ProjectHandler) Undo(c fiber.Ctx) error {
	return h.step(c, (*editor.Session).Undo)
}

func (h *ProjectHandler) Redo(c fiber.Ctx) error {
	return h.step(c, (*editor.Session).Redo)
}

func (h *ProjectHandler) step(c fiber.Ctx, fn func(*editor.Session) (models.Project, bool, error)) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	p, applied, err := fn(s)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(historyResponse{
		Project: p,
		Applied: applied,
		CanUndo: s.CanUndo(),
		CanRedo: s.CanRedo(),
	})
}

// Reset clears the plan and its history, keeping the project id.
func (h *ProjectHandler) Reset(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	name, ok := nameFrom(c)
	if !ok {
		return writeError(c, errInvalidJSON)
	}
	p, err := s.Reset(name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

// ============================================================
// Scans
// ============================================================

// AddScan converts a finished capture into a room placed next to the plan.
func (h *ProjectHandler) AddScan(c fiber.Ctx) error {
	if err := capture.CheckSupported(h.device); err != nil {
		return writeError(c, err)
	}
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	var req scanRequest
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, err)
	}
	if req.Snapshot == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "snapshot required"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("Room %d", len(s.Project().Rooms)+1)
	}

	res := capture.Convert(*req.Snapshot, name)
	log.Printf("[CAPTURE] Scan converted: %s, %d walls, %d doors, %d windows",
		name, len(req.Snapshot.Walls), len(res.Doors), len(res.Windows))

	room, err := s.ApplyScan(res)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"room":    room,
		"project": s.Project(),
	})
}

// ============================================================
// Export
// ============================================================

// DownloadExport returns the encoded plan as an attachment.
func (h *ProjectHandler) DownloadExport(c fiber.Ctx) error {
	f, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	data, err := s.Export(f)
	if err != nil {
		return writeError(c, err)
	}

	c.Set("Content-Type", f.MIMEType())
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(s.Project().Name, f)))
	return c.Send(data)
}

// SaveExport writes the encoded plan into the export directory.
func (h *ProjectHandler) SaveExport(c fiber.Ctx) error {
	f, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}

	res := <-s.ExportAsync(f)
	if res.Err != nil {
		return writeError(c, res.Err)
	}

	path, err := h.files.SaveExport(res.FileName, res.Data)
	if err != nil {
		return writeError(c, &export.EncodeError{Format: f, Err: err})
	}
	log.Printf("[EXPORT] Saved %s (%d bytes)", path, len(res.Data))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"path":     path,
		"fileName": res.FileName,
		"mimeType": f.MIMEType(),
		"bytes":    len(res.Data),
	})
}
