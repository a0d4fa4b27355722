// Package wellknown serves the discovery documents clients fetch before talking to a blog.
package wellknown

import (
	"encoding/xml"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/service"
)

const rsdNamespace = "http://archipelago.phrasewise.com/rsd"

type RSDApi struct {
	Name      string `xml:"name,attr"`
	Preferred bool   `xml:"preferred,attr"`
	ApiLink   string `xml:"apiLink,attr"`
	BlogID    string `xml:"blogID,attr"`
}

type RSDService struct {
	EngineName   string   `xml:"engineName"`
	EngineLink   string   `xml:"engineLink"`
	HomePageLink string   `xml:"homePageLink"`
	Apis         []RSDApi `xml:"apis>api"`
}

type RSD struct {
	XMLName xml.Name   `xml:"rsd"`
	Version string     `xml:"version,attr"`
	Xmlns   string     `xml:"xmlns,attr"`
	Service RSDService `xml:"service"`
}

// NewRSD describes the XML-RPC interfaces of a blog. MetaWeblog is the preferred one.
func NewRSD(engine string, base, home, endpoint *url.URL, blogID string) RSD {
	api := func(name string, preferred bool) RSDApi {
		return RSDApi{Name: name, Preferred: preferred, ApiLink: endpoint.String(), BlogID: blogID}
	}
	return RSD{
		Version: "1.0",
		Xmlns:   rsdNamespace,
		Service: RSDService{
			EngineName:   engine,
			EngineLink:   base.String(),
			HomePageLink: home.String(),
			Apis: []RSDApi{
				api("MetaWeblog", true),
				api("Blogger", false),
				api("MovableType", false),
			},
		},
	}
}

// RSDEndpoint answers with the RSD document of the blog named in the path. Blogs with XML-RPC disabled have none.
func RSDEndpoint(s service.Service, engine string, base *url.URL) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "blogID")
		blog, err := s.Blog(r.Context(), id)
		if err != nil || !blog.XmlrpcEnabled {
			http.Error(w, "blog not found", http.StatusNotFound)
			return
		}

		doc := NewRSD(engine, base, blog.URL, base.JoinPath("xmlrpc", blog.ID), blog.ID)
		body, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			log.Error().Err(err).Str("blog", id).Msg("failed to marshal rsd document")
			http.Error(w, "", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/rsd+xml; charset=utf-8")
		w.Write([]byte(xml.Header))
		w.Write(body)
	}
}
