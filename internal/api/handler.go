package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bakeshop/m/internal/bakery"
	"bakeshop/m/internal/invoice"
	"bakeshop/m/internal/syncblob"
)

// Handler bundles dependencies for HTTP handlers. remote may be nil
// when no sync target is configured.
type Handler struct {
	model  *bakery.Model
	remote *syncblob.Client
	shop   string
}

// New constructs a Handler.
func New(model *bakery.Model, remote *syncblob.Client, shopName string) *Handler {
	return &Handler{model: model, remote: remote, shop: shopName}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/breads", func(r chi.Router) {
		r.Get("/", h.listBreads)
		r.Post("/", h.addBread)
		r.Put("/{index}", h.renameBread)
		r.Delete("/{index}", h.removeBread)
	})

	r.Route("/materials", func(r chi.Router) {
		r.Get("/", h.listMaterials)
		r.Post("/", h.addMaterial)
		r.Put("/{index}", h.updateMaterial)
		r.Delete("/{index}", h.removeMaterial)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", h.listRecipes)
		r.Post("/", h.addRecipe)
		r.Put("/{index}", h.updateRecipe)
		r.Delete("/{index}", h.removeRecipe)
	})

	r.Route("/costs", func(r chi.Router) {
		r.Get("/", h.costView)
		r.Put("/{bread}/units", h.setUnitsProduced)
		r.Delete("/{bread}", h.removeFromCostView)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/", h.listSales)
		r.Post("/", h.addSaleLine)
		r.Put("/{index}", h.updateSaleLine)
		r.Delete("/{index}", h.removeSaleLine)
		r.Delete("/", h.clearSales)
		r.Post("/invoice", h.printInvoice)
	})

	r.Route("/sync", func(r chi.Router) {
		r.Get("/export", h.exportSnapshot)
		r.Post("/import", h.importSnapshot)
		r.Post("/push", h.pushRemote)
		r.Post("/pull", h.pullRemote)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Bread handlers

type breadRequest struct {
	Name string `json:"name"`
}

func (h *Handler) listBreads(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.model.Breads())
}

func (h *Handler) addBread(w http.ResponseWriter, r *http.Request) {
	var req breadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.model.AddBread(req.Name); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "bread added"})
}

func (h *Handler) renameBread(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req breadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.model.RenameBread(index, req.Name); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) removeBread(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	if !confirmed(w, r) {
		return
	}
	if err := h.model.RemoveBread(index); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Material handlers

type materialRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.model.Materials())
}

func (h *Handler) addMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.model.AddMaterial(req.Name, req.Price); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "material added"})
}

func (h *Handler) updateMaterial(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Price float64 `json:"price"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.model.SetMaterialPrice(index, req.Price); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "price updated"})
}

func (h *Handler) removeMaterial(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	if !confirmed(w, r) {
		return
	}
	if err := h.model.RemoveMaterial(index); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "material removed"})
}

// Recipe handlers

type recipeRequest struct {
	Bread    string  `json:"bread"`
	Material string  `json:"material"`
	Qty      float64 `json:"qty"`
}

func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	bread := r.URL.Query().Get("bread")
	if bread == "" {
		bread = bakery.AllBreads
	}
	respondJSON(w, http.StatusOK, h.model.RecipesFor(bread))
}

func (h *Handler) addRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.model.AddRecipe(req.Bread, req.Material, req.Qty); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "recipe added"})
}

func (h *Handler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Qty *float64 `json:"qty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	// No quantity means the edit was abandoned.
	if req.Qty == nil {
		respondJSON(w, http.StatusOK, map[string]string{"status": "unchanged"})
		return
	}
	if err := h.model.SetRecipeQty(index, *req.Qty); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "recipe updated"})
}

func (h *Handler) removeRecipe(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	if !confirmed(w, r) {
		return
	}
	if err := h.model.RemoveRecipe(index); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Costing handlers

func (h *Handler) costView(w http.ResponseWriter, r *http.Request) {
	bread := r.URL.Query().Get("bread")
	if bread == "" {
		bread = bakery.AllBreads
	}
	rows, err := h.model.RefreshCosts(bread)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to refresh costs")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) setUnitsProduced(w http.ResponseWriter, r *http.Request) {
	bread := chi.URLParam(r, "bread")
	var req struct {
		Units float64 `json:"units"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.model.SetUnitsProduced(bread, req.Units); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"bread":     bread,
		"units":     req.Units,
		"unit_cost": h.model.BreadCost(bread),
	})
}

func (h *Handler) removeFromCostView(w http.ResponseWriter, r *http.Request) {
	bread := chi.URLParam(r, "bread")
	if !confirmed(w, r) {
		return
	}
	if err := h.model.RemoveFromCostView(bread); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to remove bread")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// Sales handlers

type saleLineView struct {
	Bread   string  `json:"bread"`
	Benefit float64 `json:"benefit"`
	Num     int     `json:"num"`
	Amount  float64 `json:"amount"`
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	lines := h.model.Sales()
	view := make([]saleLineView, len(lines))
	for i, s := range lines {
		view[i] = saleLineView{Bread: s.Bread, Benefit: s.Benefit, Num: s.Num, Amount: h.model.LineAmount(s)}
	}
	respondJSON(w, http.StatusOK, map[string]any{"lines": view, "total": h.model.SalesTotal()})
}

func (h *Handler) addSaleLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bread string `json:"bread"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.model.AddSaleLine(req.Bread); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to add sale")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added to sales"})
}

func (h *Handler) updateSaleLine(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Benefit any `json:"benefit"`
		Num     any `json:"num"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Benefit != nil {
		if err := h.model.SetBenefit(index, coerceFloat(req.Benefit)); err != nil {
			respondModelError(w, err)
			return
		}
	}
	if req.Num != nil {
		// Fractional counts are truncated to whole units.
		if err := h.model.SetNum(index, int(coerceFloat(req.Num))); err != nil {
			respondModelError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) removeSaleLine(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	if err := h.model.RemoveSaleLine(index); err != nil {
		respondModelError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sale removed"})
}

func (h *Handler) clearSales(w http.ResponseWriter, r *http.Request) {
	if !confirmed(w, r) {
		return
	}
	if err := h.model.ClearSales(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to clear sales")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sales cleared"})
}

func (h *Handler) printInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer string `json:"customer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sales := h.model.Sales()
	lines := make([]invoice.Line, len(sales))
	for i, s := range sales {
		lines[i] = invoice.Line{Bread: s.Bread, Num: s.Num, Amount: h.model.LineAmount(s)}
	}
	doc := invoice.Render(h.shop, req.Customer, time.Now(), lines, h.model.SalesTotal())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Sync handlers

func (h *Handler) exportSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := h.model.ExportSnapshot()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to export")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to read request body")
		return
	}
	if err := h.model.ImportSnapshot(data); err != nil {
		if errors.Is(err, bakery.ErrInvalidSnapshot) {
			respondError(w, http.StatusBadRequest, "invalid data")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to import")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "imported successfully"})
}

func (h *Handler) pushRemote(w http.ResponseWriter, r *http.Request) {
	if h.remote == nil {
		respondError(w, http.StatusConflict, "remote sync is not configured")
		return
	}
	data, err := h.model.ExportSnapshot()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to export")
		return
	}
	if err := h.remote.Push(r.Context(), data); err != nil {
		respondError(w, http.StatusBadGateway, "upload failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "uploaded"})
}

func (h *Handler) pullRemote(w http.ResponseWriter, r *http.Request) {
	if h.remote == nil {
		respondError(w, http.StatusConflict, "remote sync is not configured")
		return
	}
	data, err := h.remote.Pull(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "download failed")
		return
	}
	if err := h.model.ImportSnapshot(data); err != nil {
		if errors.Is(err, bakery.ErrInvalidSnapshot) {
			respondError(w, http.StatusBadGateway, "remote document is invalid")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to import")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "downloaded"})
}

// Helpers

// indexParam only guards against non-numeric input; bounds checking is
// the model's job, so negative and too-large indexes both surface as
// the same not-found error.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid index")
		return 0, false
	}
	return index, true
}

// confirmed enforces the explicit confirmation step on destructive
// routes: the caller must re-send the request with confirm=true.
func confirmed(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, http.StatusBadRequest, "confirmation required: retry with confirm=true")
		return false
	}
	return true
}

// coerceFloat mirrors loose numeric input handling: numbers pass
// through, numeric strings parse, anything else becomes 0.
func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondModelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bakery.ErrDuplicate):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, bakery.ErrIndexOutOfRange):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bakery.ErrNameRequired),
		errors.Is(err, bakery.ErrPriceInvalid),
		errors.Is(err, bakery.ErrBreadRequired),
		errors.Is(err, bakery.ErrFieldsRequired),
		errors.Is(err, bakery.ErrUnitsInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "unable to save changes")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
