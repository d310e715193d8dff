package articles

import (
	"net/http"

	"github.com/inkwell-web/inkwell/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" /{$}", h.handleFeed)
	mux.HandleFunc(http.MethodGet+" "+routepath.CategoryPrefix+"{name}/{$}", h.handleCategoryFeed)
	mux.HandleFunc(http.MethodGet+" "+routepath.LoadMore+"{$}", h.handleLoadMore)

	mux.HandleFunc(http.MethodGet+" "+routepath.PostCreate+"{$}", h.handleCreateForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.PostCreate+"{$}", h.handleCreateSubmit)

	mux.HandleFunc(http.MethodGet+" "+routepath.PostPrefix+"{id}/{$}", h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.PostPrefix+"{id}/{$}", h.handleInlineSave)

	mux.HandleFunc(http.MethodGet+" "+routepath.PostPrefix+"{id}/edit/{$}", h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.PostPrefix+"{id}/edit/{$}", h.handleEditSubmit)

	mux.HandleFunc(http.MethodGet+" "+routepath.PostPrefix+"{id}/delete/{$}", h.handleDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.PostPrefix+"{id}/delete/{$}", h.handleDeleteSubmit)
}
