package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "MethodAccuracyOnly"); got != "Based on answer accuracy" {
		t.Errorf("T(MethodAccuracyOnly) = %q", got)
	}
	if got := T(ctx, "ComponentTechnical"); got != "Technical Skills" {
		t.Errorf("T(ComponentTechnical) = %q", got)
	}
}

func TestTranslateSpanish(t *testing.T) {
	ctx := initLang(t, "es")

	if got := T(ctx, "MethodAccuracyOnly"); got != "Basado en la exactitud de las respuestas" {
		t.Errorf("T(MethodAccuracyOnly) = %q", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Tp(ctx, "PapersGraded", 1); got != "1 paper graded." {
		t.Errorf("Tp(PapersGraded, 1) = %q", got)
	}
	if got := Tp(ctx, "PapersGraded", 5); got != "5 papers graded." {
		t.Errorf("Tp(PapersGraded, 5) = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "ScoreSummary", map[string]any{"Score": 62, "Letter": "D"})
	if got != "62% (D)" {
		t.Errorf("Td(ScoreSummary) = %q, want '62%% (D)'", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestContextWithoutLocalizerUsesDefault(t *testing.T) {
	initLang(t, "es")

	if got := T(context.Background(), "ComponentAccuracy"); got != "Exactitud de las preguntas" {
		t.Errorf("T without localizer = %q", got)
	}
}

func TestMiddlewareHonoursAcceptLanguage(t *testing.T) {
	initLang(t, "en")

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "ErrPaperNotFound")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.5")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "Trabajo no encontrado." {
		t.Errorf("Accept-Language es: got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "Trabajo no encontrado." {
		t.Errorf("lang=es: got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "Paper not found." {
		t.Errorf("default: got %q", got)
	}
}
