package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

func (a *App) renderRSS(c echo.Context, docs []Document) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(docs))
	for _, d := range docs {
		pubDate := ""
		if t, ok := publishedTime(d); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := joinURL(base, d.Link())
		var categories []string
		for _, t := range d.TagList {
			if t != "" {
				categories = append(categories, t)
			}
		}
		items = append(items, rssItem{
			Title:       d.Title,
			Link:        postURL,
			Description: metaDescription(d),
			Categories:  categories,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        joinURL(base, ""),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
