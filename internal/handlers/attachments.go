package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/flash"
	"github.com/diewo77/go-missions/internal/mission"
	"github.com/diewo77/go-missions/internal/staging"
	"github.com/diewo77/go-missions/view"
)

// multipartMemory is kept in memory before spilling to temp files.
const multipartMemory = 8 << 20

// pendingTarget reads the ordre id and checks that the user may attach
// receipts at all. It answers the request itself when it returns false.
func (h *Handler) pendingTarget(w http.ResponseWriter, r *http.Request) (staging.Batch, bool) {
	f, id, ok := recordParams(r)
	if !ok || f != mission.FamilyOrdre || h.staging == nil {
		h.NotFound(w, r)
		return staging.Batch{}, false
	}
	s := session(r)
	if !h.authz.CanUse(r.Context(), s, f, actions.AddAttachments) {
		h.denied(w, r)
		return staging.Batch{}, false
	}
	return staging.Batch{OwnerID: s.UserID, OrdreID: id}, true
}

func pendingPath(id uint) string { return fmt.Sprintf("/ordre/%d/pending", id) }

// Pending shows the files staged for an ordre awaiting its receipts.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	b, ok := h.pendingTarget(w, r)
	if !ok {
		return
	}
	s := session(r)
	rec, err := h.backend.Get(r.Context(), s.Token, mission.FamilyOrdre, b.OrdreID)
	if err != nil {
		h.backendFailed(w, r, err, r.URL.RequestURI())
		return
	}
	if !h.authz.CanAct(r.Context(), s, mission.FamilyOrdre, actions.AddAttachments, rec) {
		h.denied(w, r)
		return
	}
	files, err := h.staging.List(r.Context(), b)
	if err != nil {
		h.backendFailed(w, r, err, r.URL.RequestURI())
		return
	}
	key := actions.Key{Family: mission.FamilyOrdre, ID: b.OrdreID, Action: actions.AddAttachments}
	base := pendingPath(b.OrdreID)
	view.Must(w, r, http.StatusOK, "attachments.html", map[string]any{
		"Family":       mission.FamilyOrdre,
		"Record":       rec,
		"Files":        files,
		"Total":        staging.TotalSize(files),
		"Busy":         h.dispatcher.Tracker().State(key) == actions.Pending,
		"Back":         landing(mission.FamilyOrdre, rec.Statut).Path(),
		"AddAction":    base,
		"RemoveBase":   base,
		"SubmitAction": base + "/submit",
	})
}

// AddPending stages the uploaded files. Nothing reaches the backend yet.
func (h *Handler) AddPending(w http.ResponseWriter, r *http.Request) {
	b, ok := h.pendingTarget(w, r)
	if !ok {
		return
	}
	back := pendingPath(b.OrdreID)
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			flash.Write(w, flash.Error("attach.too_large", ""))
		} else {
			flash.Write(w, flash.Error("attach.nothing", ""))
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	added := 0
	for _, fh := range r.MultipartForm.File["files"] {
		data, err := readPart(fh)
		if err != nil {
			log.Printf("staging file=%q err=%v", fh.Filename, err)
			continue
		}
		if _, err := h.staging.Add(r.Context(), b, fh.Filename, fh.Header.Get("Content-Type"), data); err != nil {
			log.Printf("staging file=%q err=%v", fh.Filename, err)
			continue
		}
		added++
	}
	if added == 0 {
		flash.Write(w, flash.Error("attach.nothing", ""))
	} else {
		flash.Write(w, flash.Success("attach.added"))
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// RemovePending drops one staged file. This is local only.
func (h *Handler) RemovePending(w http.ResponseWriter, r *http.Request) {
	b, ok := h.pendingTarget(w, r)
	if !ok {
		return
	}
	fileID, ok := idParam(r, "fileID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	switch err := h.staging.Remove(r.Context(), b, fileID); {
	case err == nil:
		flash.Write(w, flash.Info("attach.removed"))
	case errors.Is(err, staging.ErrNotFound):
		flash.Write(w, flash.Error("attach.nothing", ""))
	default:
		flash.Write(w, flash.Error("flash.action.failed", err.Error()))
	}
	http.Redirect(w, r, pendingPath(b.OrdreID), http.StatusSeeOther)
}

// SubmitPending uploads every staged file in one request and clears the
// batch once the backend accepted it.
func (h *Handler) SubmitPending(w http.ResponseWriter, r *http.Request) {
	b, ok := h.pendingTarget(w, r)
	if !ok {
		return
	}
	back := pendingPath(b.OrdreID)
	files, err := h.staging.Load(r.Context(), b)
	if err != nil || len(files) == 0 {
		flash.Write(w, flash.Info("attach.nothing"))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	s := session(r)
	l := lang(r)
	uploads := make([]backend.Upload, 0, len(files))
	for _, f := range files {
		uploads = append(uploads, backend.Upload{Name: f.Name, ContentType: f.ContentType, Data: f.Data})
	}
	out := h.dispatcher.Run(r.Context(), actions.Request{
		Key: actions.Key{Family: mission.FamilyOrdre, ID: b.OrdreID, Action: actions.AddAttachments},
		Call: func(ctx context.Context) error {
			return h.backend.UploadAttachments(ctx, s.Token, b.OrdreID, uploads)
		},
		OnComplete: func() {
			if err := h.staging.Clear(context.WithoutCancel(r.Context()), b); err != nil {
				log.Printf("staging clear ordre=%d err=%v", b.OrdreID, err)
			}
			flash.Write(w, flash.Success("flash.addAttachments.ok"))
			back = landing(mission.FamilyOrdre, mission.StatusEnAttenteJustificatif).Path()
		},
		OnError: func(err error) {
			flash.Write(w, failureNotice(l, err))
		},
	})
	switch {
	case out.Detached:
		return
	case out.Refused && errors.Is(out.Err, actions.ErrCompleted):
		flash.Write(w, flash.Info("action.done"))
	case out.Refused:
		flash.Write(w, flash.Info("action.pending"))
	case backend.IsUnauthorized(out.Err):
		h.expire(w, r)
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
