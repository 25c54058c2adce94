package folio

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleIndex(c echo.Context) error {
	docs, err := a.listDocuments(c)
	if err != nil {
		return err
	}
	meta := a.Synth.SiteMetadata(a.Config.Description, a.Config.Image)
	return Render(c, a.Views.Index(docs, meta, a.Config))
}

func (a *App) handlePost(c echo.Context) error {
	doc, err := a.Resolver.Resolve(c.Request().Context(), c.Param("slug"))
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return RenderStatus(c, nf.Status, a.Views.NotFound(nf, a.Config))
		}
		return err
	}
	// Related posts are best effort; the post itself already resolved.
	docs, err := a.listDocuments(c)
	if err != nil {
		c.Logger().Errorf("related posts for %q: %v", doc.Slug, err)
	}
	meta := a.Synth.Synthesize(doc)
	return Render(c, a.Views.Post(doc, RelatedDocuments(doc, docs), meta, a.Config))
}

func (a *App) listDocuments(c echo.Context) ([]Document, error) {
	if a.lister == nil {
		return []Document{}, nil
	}
	docs, skipped, err := a.Resolver.ResolveAll(c.Request().Context(), a.lister)
	if err != nil {
		return nil, err
	}
	for _, md := range skipped {
		c.Logger().Warnf("skipping document: %v", md)
	}
	return docs, nil
}

func (a *App) handleSitemap(c echo.Context) error {
	docs, err := a.listDocuments(c)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, docs)
}

func (a *App) handleFeed(c echo.Context) error {
	docs, err := a.listDocuments(c)
	if err != nil {
		return err
	}
	return a.renderRSS(c, docs)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.ico")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		_ = RenderStatus(c, nf.Status, a.Views.NotFound(nf, a.Config))
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(newNotFoundError(c.Request().URL.Path), a.Config))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
