package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skybox/internal/errors"
	"skybox/internal/service"
)

// FileHandler proxies file endpoints to the downstream file service using
// the resolved account as the owner identity.
type FileHandler struct {
	files service.FileService
}

// NewFileHandler creates a new file handler.
func NewFileHandler(files service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// DeleteFileRequest identifies the file to delete.
type DeleteFileRequest struct {
	FileID string `json:"file_id" validate:"required"`
}

// RenameFileRequest carries the new display name of a file.
type RenameFileRequest struct {
	FileID   string `json:"file_id" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
}

// CreateFolderRequest names the folder to create.
type CreateFolderRequest struct {
	FolderName string `json:"folder_name" validate:"required"`
	ParentID   string `json:"parent_id"`
}

// Upload godoc
// @Summary Upload a file
// @Tags files
// @Accept mpfd
// @Produce json
// @Param file formData file true "File content"
// @Param parent_id formData string false "Parent folder id"
// @Security BearerAuth
// @Success 201 {object} fileservice.File
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /files/upload [post]
func (h *FileHandler) Upload(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	parentID := c.FormValue("parent_id")

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	stored, err := h.files.Upload(c.Request().Context(), user.ID, parentID,
		fh.Filename, fh.Header.Get("Content-Type"), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
			Error: "upload failed",
			Code:  "UPSTREAM_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, stored)
}

// List godoc
// @Summary List files owned by the account
// @Tags files
// @Produce json
// @Security BearerAuth
// @Success 200 {array} fileservice.File
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /files [get]
func (h *FileHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	files, err := h.files.List(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
			Error: "listing failed",
			Code:  "UPSTREAM_FAILED",
		})
	}
	return c.JSON(http.StatusOK, files)
}

// Delete godoc
// @Summary Delete a file
// @Tags files
// @Accept json
// @Produce json
// @Param request body DeleteFileRequest true "File to delete"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /files/delete [post]
func (h *FileHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req DeleteFileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.files.Delete(c.Request().Context(), user.ID, req.FileID); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
			Error: "delete failed",
			Code:  "UPSTREAM_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "file deleted"})
}

// Rename godoc
// @Summary Rename a file
// @Tags files
// @Accept json
// @Produce json
// @Param request body RenameFileRequest true "File and new name"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /files/rename [post]
func (h *FileHandler) Rename(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req RenameFileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.files.Rename(c.Request().Context(), user.ID, req.FileID, req.FileName); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
			Error: "rename failed",
			Code:  "UPSTREAM_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "file renamed"})
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags files
// @Accept json
// @Produce json
// @Param request body CreateFolderRequest true "Folder data"
// @Security BearerAuth
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /folders [post]
func (h *FileHandler) CreateFolder(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateFolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.files.CreateFolder(c.Request().Context(), user.ID, req.ParentID, req.FolderName); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
			Error: "folder creation failed",
			Code:  "UPSTREAM_FAILED",
		})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "folder created"})
}
