package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"audito/internal/analysis"
)

type urlAnalysisRequest struct {
	URL            string `json:"url"`
	ProductContext string `json:"product_context"`
}

// AnalyzeUpload handles multipart uploads: a "file" part plus an optional
// "product_context" field.
func (a *App) AnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "Arquivo deve ser uma imagem válida")
		return
	}
	defer file.Close()

	if !isImagePart(header) {
		a.error(w, http.StatusBadRequest, "Arquivo deve ser uma imagem válida")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "Erro interno do servidor: falha ao ler o arquivo")
		return
	}

	result, err := a.Analyzer.AnalyzeUpload(r.Context(), data, header.Filename, r.FormValue("product_context"))
	if err != nil {
		a.error(w, http.StatusBadRequest, err.Error())
		return
	}

	a.respond(w, result)
}

// AnalyzeURL handles JSON requests naming an image URL to fetch and analyze.
// Page URLs are accepted too: the resolver falls back to a screenshot.
func (a *App) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	a.analyzeFromURLRequest(w, r)
}

// AnalyzeScreenshot captures the page behind a URL and analyzes the result.
// The resolver already detects direct image links, so the behavior matches
// AnalyzeURL; the route exists so clients can state their intent.
func (a *App) AnalyzeScreenshot(w http.ResponseWriter, r *http.Request) {
	a.analyzeFromURLRequest(w, r)
}

// Analyze is the unified entrypoint: a multipart form carrying exactly one of
// a "file" part or a "url" field.
func (a *App) Analyze(w http.ResponseWriter, r *http.Request) {
	file, header, fileErr := r.FormFile("file")
	rawURL := strings.TrimSpace(r.FormValue("url"))
	hasFile := fileErr == nil

	if hasFile {
		defer file.Close()
	}

	switch {
	case hasFile && rawURL != "":
		a.error(w, http.StatusBadRequest, "Forneça apenas um arquivo OU uma URL, não ambos")
		return
	case !hasFile && rawURL == "":
		a.error(w, http.StatusBadRequest, "Forneça um arquivo OU uma URL para análise")
		return
	}

	productContext := r.FormValue("product_context")

	if hasFile {
		data, err := io.ReadAll(file)
		if err != nil {
			a.error(w, http.StatusInternalServerError, "Erro interno do servidor: falha ao ler o arquivo")
			return
		}
		result, err := a.Analyzer.AnalyzeUpload(r.Context(), data, header.Filename, productContext)
		if err != nil {
			a.error(w, http.StatusBadRequest, err.Error())
			return
		}
		a.respond(w, result)
		return
	}

	result, err := a.Analyzer.AnalyzeFromURL(r.Context(), rawURL, productContext)
	if err != nil {
		a.error(w, http.StatusBadRequest, err.Error())
		return
	}
	a.respond(w, result)
}

func (a *App) analyzeFromURLRequest(w http.ResponseWriter, r *http.Request) {
	var req urlAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		a.error(w, http.StatusBadRequest, "Forneça um arquivo OU uma URL para análise")
		return
	}

	result, err := a.Analyzer.AnalyzeFromURL(r.Context(), req.URL, req.ProductContext)
	if err != nil {
		a.error(w, http.StatusBadRequest, err.Error())
		return
	}

	a.respond(w, result)
}

// respond stamps the analysis time onto the formatted result and writes it.
func (a *App) respond(w http.ResponseWriter, result map[string]any) {
	resp := analysis.FormatResponse(result)
	resp.AnalysisTimestamp = unixSeconds(time.Now())
	a.json(w, http.StatusOK, resp)
}

func isImagePart(header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "image/")
}
