package opportunityclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/mkhera/voluntree-cli/pkg/clients/apiclient"
	"github.com/mkhera/voluntree-cli/pkg/core/model"
	"github.com/mkhera/voluntree-cli/pkg/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, sessions.Save(&session.Session{Token: &oauth2.Token{AccessToken: "tok"}}))

	api := apiclient.NewClient(server.URL, 5*time.Second, 100, sessions, zap.NewNop())
	return NewClient(api), server
}

func samplePayload() *model.OpportunityPayload {
	return &model.OpportunityPayload{
		Description:     "Help on our farm",
		VolunteerIn:     "Gardening and animal care",
		Expectations:    "4 hours a day",
		AboutLocation:   "Quiet hills",
		State:           "Himachal Pradesh",
		District:        "Kullu",
		Location:        "Near the old bridge",
		PropertyName:    "Hilltop Farmstay",
		PropertyAddress: "Village Road 12",
		BusinessLink:    "https://hilltop.example.com",
		PropertyType:    []string{"Farmstay", "Homestay"},
		RoomType:        []string{"Private Room"},
		Meals:           "2 Meals Per Day",
		Amenities:       []string{"Wifi", "Hot Water"},
		Transport:       []string{"Bus Station Pickup"},
		Skills:          []string{"Gardening", "Animal Care"},
		VolunteerNeeded: 2,
		WorkingHours:    4,
		DaysOff:         1,
		MinimumDuration: 2,
		SafeForFemale:   true,
		Status:          model.StatusActive,
		ExistingImages: []model.Image{
			{URL: "https://cdn.example.com/a.jpg", AssetID: "asset-a", PublicID: "pub-a"},
		},
		NewImages: []model.PendingImage{
			{LocalID: "local-1", FileName: "barn.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")},
		},
	}
}

func TestCreate_SerializesFullMultipartPayload(t *testing.T) {
	var gotForm map[string][]string
	var fileNames []string
	var fileTypes []string
	var fileBodies []string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/opportunities", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		gotForm = r.MultipartForm.Value
		for _, fh := range r.MultipartForm.File["images"] {
			fileNames = append(fileNames, fh.Filename)
			fileTypes = append(fileTypes, fh.Header.Get("Content-Type"))
			f, err := fh.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(f)
			require.NoError(t, err)
			f.Close()
			fileBodies = append(fileBodies, string(data))
		}

		w.Write([]byte(`{"success": true, "opportunity": {"_id": "opp-1", "status": "active"}}`))
	}))

	created, err := client.Create(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "opp-1", created.ID)

	// Scalars stringified
	assert.Equal(t, []string{"Help on our farm"}, gotForm["description"])
	assert.Equal(t, []string{"2"}, gotForm["volunteerNeeded"])
	assert.Equal(t, []string{"true"}, gotForm["safeForFemale"])
	assert.Equal(t, []string{"active"}, gotForm["status"])

	// meals is a single value, not repeated
	assert.Equal(t, []string{"2 Meals Per Day"}, gotForm["meals"])

	// Arrays expanded as repeated keys of the same name
	assert.Equal(t, []string{"Farmstay", "Homestay"}, gotForm["propertyType"])
	assert.Equal(t, []string{"Gardening", "Animal Care"}, gotForm["skills"])

	// Existing images pass through as JSON tokens
	require.Len(t, gotForm["existingImages"], 1)
	var ref model.Image
	require.NoError(t, json.Unmarshal([]byte(gotForm["existingImages"][0]), &ref))
	assert.Equal(t, "asset-a", ref.AssetID)

	// New image attached as a binary part with its MIME type preserved
	assert.Equal(t, []string{"barn.jpg"}, fileNames)
	assert.Equal(t, []string{"image/jpeg"}, fileTypes)
	assert.Equal(t, []string{"jpegdata"}, fileBodies)
}

func TestCreate_NilMaximumDurationIsOmittedEntirely(t *testing.T) {
	var gotForm map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotForm = r.MultipartForm.Value
		w.Write([]byte(`{"success": true, "opportunity": {"_id": "opp-1"}}`))
	}))

	payload := samplePayload()
	payload.MaximumDuration = nil

	_, err := client.Create(context.Background(), payload)
	require.NoError(t, err)

	_, present := gotForm["maximumDuration"]
	assert.False(t, present, "nil maximumDuration must not be sent as a key at all")
}

func TestCreate_SetMaximumDurationIsSent(t *testing.T) {
	var gotForm map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotForm = r.MultipartForm.Value
		w.Write([]byte(`{"success": true, "opportunity": {"_id": "opp-1"}}`))
	}))

	max := 8
	payload := samplePayload()
	payload.MaximumDuration = &max

	_, err := client.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"8"}, gotForm["maximumDuration"])
}

func TestCreate_NewImagesKeepSubmissionOrder(t *testing.T) {
	var fileNames []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		for _, fh := range r.MultipartForm.File["images"] {
			fileNames = append(fileNames, fh.Filename)
		}
		w.Write([]byte(`{"success": true, "opportunity": {"_id": "opp-1"}}`))
	}))

	payload := samplePayload()
	payload.NewImages = []model.PendingImage{
		{LocalID: "l1", FileName: "first.png", ContentType: "image/png", Data: []byte("a")},
		{LocalID: "l2", FileName: "second.png", ContentType: "image/png", Data: []byte("b")},
		{LocalID: "l3", FileName: "third.png", ContentType: "image/png", Data: []byte("c")},
	}

	_, err := client.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"first.png", "second.png", "third.png"}, fileNames)
}

func TestCreate_ServerRejectionSurfacesMessageAndError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success": false, "message": "images are required"}`))
	}))

	_, err := client.Create(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Equal(t, "images are required", apiclient.UserMessage(err))
}

func TestUpdate_TargetsEntityByIdentifierInPath(t *testing.T) {
	var gotPath, gotMethod string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, r.ParseMultipartForm(10<<20))
		w.Write([]byte(`{"success": true, "opportunity": {"_id": "opp-7", "status": "active"}}`))
	}))

	updated, err := client.Update(context.Background(), "opp-7", samplePayload())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/opportunities/opp-7", gotPath)
	assert.Equal(t, "opp-7", updated.ID)
}

func TestSetStatus_SendsOnlyTheStatusField(t *testing.T) {
	var gotBody map[string]any
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success": true, "opportunity": {"_id": "opp-7", "status": "inactive"}}`))
	}))

	updated, err := client.SetStatus(context.Background(), "opp-7", model.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, "/opportunities/opp-7/status", gotPath)
	assert.Equal(t, map[string]any{"status": "inactive"}, gotBody)
	assert.Equal(t, model.StatusInactive, updated.Status)
}

func TestListMine_DecodesOpportunities(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/opportunities/mine", r.URL.Path)
		w.Write([]byte(`{"success": true, "opportunities": [
			{"_id": "opp-1", "propertyName": "Hilltop", "status": "active"},
			{"_id": "opp-2", "propertyName": "Riverside", "status": "inactive"}
		]}`))
	}))

	opportunities, err := client.ListMine(context.Background())
	require.NoError(t, err)
	require.Len(t, opportunities, 2)
	assert.Equal(t, "Hilltop", opportunities[0].PropertyName)
	assert.Equal(t, model.StatusInactive, opportunities[1].Status)
}

func TestDelete_UsesDeleteMethod(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"success": true, "message": "deleted"}`))
	}))

	err := client.Delete(context.Background(), "opp-9")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/opportunities/opp-9", gotPath)
}
