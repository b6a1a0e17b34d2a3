package swagger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"go.yaml.in/yaml/v3"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a mux with the OpenAPI document registered", t, func() {
		mux := http.NewServeMux()
		Register(mux)

		convey.Convey("When /openapi.yaml is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			convey.Convey("Then the embedded document is served", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.Len(), convey.ShouldEqual, len(OpenAPI))
			})
		})

		convey.Convey("When the document is parsed", func() {
			var doc struct {
				OpenAPI string                    `yaml:"openapi"`
				Paths   map[string]map[string]any `yaml:"paths"`
			}
			err := yaml.Unmarshal(OpenAPI, &doc)

			convey.Convey("Then every served route is described", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.OpenAPI, convey.ShouldStartWith, "3.")
				for path, method := range map[string]string{
					"/squads/select":            "post",
					"/squads/split":             "post",
					"/ratings/preview":          "post",
					"/ratings/recalculate":      "post",
					"/ratings/jobs":             "post",
					"/ratings/changes":          "get",
					"/players/{id}/opportunity": "get",
					"/performances":             "post",
					"/stats":                    "get",
					"/healthz":                  "get",
				} {
					convey.So(doc.Paths[path], convey.ShouldContainKey, method)
				}
			})
		})

		convey.Convey("When a nil mux is passed", func() {
			convey.Convey("Then Register panics", func() {
				convey.So(func() { Register(nil) }, convey.ShouldPanic)
			})
		})
	})
}
