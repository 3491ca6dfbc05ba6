package web_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scoreboard/internal/factory"
	"github.com/mcoot/scoreboard/internal/model"
	"github.com/mcoot/scoreboard/internal/testutil"
	"github.com/mcoot/scoreboard/internal/web"
)

type webTest struct {
	app     *factory.TestApp
	handler *mux.Router
	ctx     context.Context
}

func newWebTest(t *testing.T) *webTest {
	t.Helper()
	app := factory.NewTestApp()
	t.Cleanup(app.Close)

	router := web.NewRouter(web.RouterConfig{
		Logger:      testutil.NopLogger(),
		Controller:  app.ScoreboardController,
		HubManager:  app.HubManager,
		Broadcaster: app.Broadcaster,
	})
	return &webTest{app: app, handler: router, ctx: context.Background()}
}

func (wt *webTest) get(t *testing.T, path string) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rr := httptest.NewRecorder()
	wt.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	require.NoError(t, err)
	return rr, doc
}

func (wt *webTest) board(t *testing.T, code string, threshold int) *model.Scoreboard {
	t.Helper()
	wt.app.MockRandom.QueueString(code)
	b, err := wt.app.ScoreboardController.CreateBoard(wt.ctx, threshold)
	require.NoError(t, err)
	return b
}

func TestIndexListsBoards(t *testing.T) {
	wt := newWebTest(t)
	wt.board(t, "ABC123", 100)

	rr, doc := wt.get(t, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	link := doc.Find(".board a")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "/boards/ABC123", href)
}

func TestIndexEmpty(t *testing.T) {
	wt := newWebTest(t)

	_, doc := wt.get(t, "/")
	assert.Equal(t, 1, doc.Find(".no-boards").Length())
}

func TestBoardPage(t *testing.T) {
	wt := newWebTest(t)
	b := wt.board(t, "ABC123", 100)
	_, _, err := wt.app.ScoreboardController.AddPlayer(wt.ctx, b.Code, "Alice")
	require.NoError(t, err)
	_, _, err = wt.app.ScoreboardController.AddScore(wt.ctx, b.Code, "Alice", 120)
	require.NoError(t, err)

	rr, doc := wt.get(t, "/boards/abc123")
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "100", doc.Find(".threshold-value").Text())
	assert.Equal(t, "Alice", doc.Find(".winner-name").Text())
	assert.Equal(t, "120", doc.Find(".player .player-total").Text())
	connect, _ := doc.Find("[sse-connect]").Attr("sse-connect")
	assert.Equal(t, "/boards/ABC123/events", connect)
}

func TestBoardPageNotFound(t *testing.T) {
	wt := newWebTest(t)

	rr, doc := wt.get(t, "/boards/NOPE00")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, doc.Find(".not-found").Text(), "NOPE00")
}

func TestBoardEventsStreamsFragments(t *testing.T) {
	wt := newWebTest(t)
	b := wt.board(t, "ABC123", 100)

	srv := httptest.NewServer(wt.handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/boards/ABC123/events")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	nextEvent := func() (string, string) {
		var name string
		var data []string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimSuffix(line, "\n")
			switch {
			case line == "" && name != "":
				return name, strings.Join(data, "\n")
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				data = append(data, strings.TrimPrefix(line, "data: "))
			}
		}
	}

	name, _ := nextEvent()
	assert.Equal(t, "connected", name)

	name, data := nextEvent()
	assert.Equal(t, "scoreboard-update", name)
	assert.Contains(t, data, "empty-roster")

	_, _, err = wt.app.ScoreboardController.AddPlayer(wt.ctx, b.Code, "Bob")
	require.NoError(t, err)

	name, data = nextEvent()
	assert.Equal(t, "scoreboard-update", name)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Bob", doc.Find(".player-name").Text())
}

func TestBoardEventsNotFound(t *testing.T) {
	wt := newWebTest(t)

	rr, _ := wt.get(t, "/boards/NOPE00/events")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
