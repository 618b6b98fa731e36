package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pavel-fokin/nas-files/internal/apperror"
	"github.com/pavel-fokin/nas-files/internal/files"
	"github.com/pavel-fokin/nas-files/internal/users"
)

// response is the envelope for every JSON reply.
type response struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

func writeResponse(w http.ResponseWriter, code int, message string, data any) {
	if code == http.StatusNoContent {
		w.WriteHeader(code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	resp := response{
		Status:  fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Message: message,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err)
		writeResponse(w, http.StatusInternalServerError, "a server error occurred", nil)
		return
	}

	if appErr.Kind == apperror.Storage || appErr.Kind == apperror.Internal {
		slog.Error("Request failed", "error", appErr)
	}

	writeResponse(w, appErr.StatusCode(), appErr.Message, nil)
}

type signupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type fileRequest struct {
	FileID      int64  `json:"file_id"`
	Description string `json:"description"`
}

// decodeBody fills dst from a JSON body, or from form fields via setForm
// when the request is not JSON. The form body is read directly so that it is
// honored on every method, DELETE included, where net/http's ParseForm would
// skip it.
func decodeBody(r *http.Request, dst any, setForm func(form url.Values)) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("failed to decode request body: %w", err)
		}
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	form, err := url.ParseQuery(string(body))
	if err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}
	setForm(form)
	return nil
}

// queryID extracts the numeric id query parameter. A missing, empty, or
// non-numeric value is reported as absent.
func queryID(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// signup creates a new account. The only precondition is that the password
// matches its confirmation; usernames are not unique and fields are not
// otherwise validated.
func signup(userService *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		err := decodeBody(r, &req, func(form url.Values) {
			req.Username = form.Get("username")
			req.Password = form.Get("password")
			req.ConfirmPassword = form.Get("confirm_password")
		})
		if err != nil {
			writeError(w, apperror.NewValidation("invalid request body"))
			return
		}

		if req.Password != req.ConfirmPassword {
			writeError(w, apperror.NewValidation("passwords do not match, please try again"))
			return
		}

		user, err := userService.CreateUser(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, http.StatusCreated, "signup successful", user)
	}
}

// login checks the submitted credentials. Missing fields are a validation
// failure; an unmatched credential pair is an empty result, not an error.
func login(userService *users.Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		err := decodeBody(r, &req, func(form url.Values) {
			req.Username = form.Get("username")
			req.Password = form.Get("password")
		})
		if err != nil {
			writeError(w, apperror.NewValidation("invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			writeError(w, apperror.NewValidation("unable to log in, please try again"))
			return
		}

		user, err := userService.FindByCredentials(r.Context(), req.Username, req.Password)
		if err != nil {
			if apperror.IsKind(err, apperror.NotFound) {
				writeError(w, apperror.NewNoContent("no matching user found"))
				return
			}
			writeError(w, err)
			return
		}

		writeResponse(w, http.StatusOK, "login successful", map[string]any{
			"id":       user.ID,
			"username": user.Username,
		})
	}
}

// getUser returns the username for the id query parameter. An unknown id is
// an empty result, not an error.
func getUser(userService *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(r)
		if !ok {
			writeError(w, apperror.NewNoContent("no data found"))
			return
		}

		username, err := userService.GetUsername(r.Context(), id)
		if err != nil {
			if apperror.IsKind(err, apperror.NotFound) {
				writeResponse(w, http.StatusOK, "fetch successful", nil)
				return
			}
			writeError(w, err)
			return
		}

		writeResponse(w, http.StatusOK, "fetch successful", map[string]string{
			"username": username,
		})
	}
}

// uploadFile stores a multipart file upload for the author given in the id
// query parameter. No file id is returned to the caller.
func uploadFile(cfg *Config, fileService *files.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := queryID(r)
		if !ok {
			writeError(w, apperror.NewValidation("unable to save data, please try again"))
			return
		}

		if err := r.ParseMultipartForm(cfg.MaxSize); err != nil {
			writeError(w, apperror.NewValidation("unable to save data, please try again"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, apperror.NewValidation("unable to save data, please try again"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, apperror.NewValidation("unable to save data, please try again"))
			return
		}

		req := &files.UploadRequest{
			AuthorID:    authorID,
			FileName:    header.Filename,
			FileType:    header.Header.Get("Content-Type"),
			FileData:    data,
			Description: r.FormValue("description"),
		}

		if _, err := fileService.Upload(r.Context(), req); err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, http.StatusCreated, "upload successful", nil)
	}
}

// updateFile sets a new description on the file named by file_id in the
// body. Updating a file id that does not exist still reports success.
func updateFile(fileService *files.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := queryID(r)
		if !ok {
			writeError(w, apperror.NewNoContent("no data found"))
			return
		}

		var req fileRequest
		err := decodeBody(r, &req, func(form url.Values) {
			req.FileID, _ = strconv.ParseInt(form.Get("file_id"), 10, 64)
			req.Description = form.Get("description")
		})
		if err != nil {
			writeError(w, apperror.NewValidation("invalid request body"))
			return
		}

		if err := fileService.UpdateDescription(r.Context(), authorID, req.FileID, req.Description); err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, http.StatusOK, "update successful", nil)
	}
}

// deleteFile removes the file named by file_id in the body. Deleting a file
// id that does not exist still reports success.
func deleteFile(fileService *files.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := queryID(r)
		if !ok {
			writeError(w, apperror.NewNoContent("no data found"))
			return
		}

		var req fileRequest
		err := decodeBody(r, &req, func(form url.Values) {
			req.FileID, _ = strconv.ParseInt(form.Get("file_id"), 10, 64)
		})
		if err != nil {
			writeError(w, apperror.NewValidation("invalid request body"))
			return
		}

		if err := fileService.Delete(r.Context(), authorID, req.FileID); err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, http.StatusOK, "delete successful", nil)
	}
}

// listFiles returns every file owned by the author in the id query
// parameter, with file content in encoded text form.
func listFiles(fileService *files.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, ok := queryID(r)
		if !ok {
			writeError(w, apperror.NewNoContent("no data found"))
			return
		}

		entries, err := fileService.ListByAuthor(r.Context(), authorID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeResponse(w, http.StatusOK, "fetch successful", entries)
	}
}
