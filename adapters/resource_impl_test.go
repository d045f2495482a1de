package adapters

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/test"
)

func newResourceClient(t *testing.T) (*ResourceClient, *test.StubServer) {
	stub := test.NewStubServer(t)
	brood, err := NewTransport(ServiceBrood, stub.URL, time.Second, nil)
	test.NewAssertions(t).Nil(err)
	return NewResourceClient(brood), stub
}

func TestResourceClient_CreateResource(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newResourceClient(t)
	appID := uuid.New()
	stub.OnJSON("POST", "/resources/", http.StatusOK, map[string]any{
		"id":             uuid.New(),
		"application_id": appID,
		"resource_data":  map[string]any{"type": "subscription", "seats": 3},
	})

	resource, err := client.CreateResource(context.Background(), f.Bearer("token"), appID, map[string]any{"type": "subscription", "seats": 3})
	assert.Nil(err)
	assert.Equals(resource.ApplicationID, appID)

	var data struct {
		Type  string `json:"type"`
		Seats int    `json:"seats"`
	}
	assert.Nil(resource.Decode(&data))
	assert.Equals(data.Type, "subscription")
	assert.Equals(data.Seats, 3)

	stub.LastJSON().Match(`{"application_id":"` + appID.String() + `","resource_data":{"type":"subscription","seats":3}}`)
	assert.Equals(stub.Last().Header.Get("Content-Type"), "application/json")
}

func TestResourceClient_ListResources(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newResourceClient(t)
	stub.OnJSON("GET", "/resources/", http.StatusOK, `{"resources":[]}`)

	resources, err := client.ListResources(context.Background(), f.Bearer("token"), map[string]string{"type": "subscription"})
	assert.Nil(err)
	assert.Len(resources.Resources, 0)
	assert.Equals(stub.Last().Query.Get("type"), "subscription")
}

func TestResourceClient_UpdateResourceSendsEmptyDefaults(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newResourceClient(t)
	resourceID := uuid.New()
	stub.OnJSON("PUT", "/resources/"+resourceID.String(), http.StatusOK, map[string]any{"id": resourceID})

	_, err := client.UpdateResource(context.Background(), f.Bearer("token"), resourceID, f.ResourceDataUpdate{})
	assert.Nil(err)
	stub.LastJSON().Match(`{"update":{},"drop_keys":[]}`)

	_, err = client.UpdateResource(context.Background(), f.Bearer("token"), resourceID, f.ResourceDataUpdate{Drop: []string{"seats"}})
	assert.Nil(err)
	stub.LastJSON().Match(`{"update":{},"drop_keys":["seats"]}`)
}

func TestResourceClient_Holders(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newResourceClient(t)
	resourceID := uuid.New()
	holderID := uuid.New()
	path := "/resources/" + resourceID.String() + "/holders"
	holders := map[string]any{
		"resource_id": resourceID,
		"holders":     []map[string]any{{"holder_id": holderID, "holder_type": "user", "permissions": []string{"read"}}},
	}
	stub.OnJSON("GET", path, http.StatusOK, holders)
	stub.OnJSON("POST", path, http.StatusOK, holders)
	stub.OnJSON("DELETE", path, http.StatusOK, holders)

	result, err := client.GetResourceHolders(context.Background(), f.Bearer("token"), resourceID)
	assert.Nil(err)
	assert.Len(result.Holders, 1)
	assert.Equals(result.Holders[0].ID, holderID)
	assert.Equals(stub.Last().Body, "")

	holder := f.ResourceHolder{ID: holderID, HolderType: f.HolderUser, Permissions: []string{"read"}}
	_, err = client.AddResourceHolderPermissions(context.Background(), f.Bearer("token"), resourceID, holder)
	assert.Nil(err)
	stub.LastJSON().Match(`{"holder_id":"` + holderID.String() + `","holder_type":"user","permissions":["read"]}`)

	_, err = client.DeleteResourceHolderPermissions(context.Background(), f.Bearer("token"), resourceID, holder)
	assert.Nil(err)
	assert.Equals(stub.Last().Method, "DELETE")
	stub.LastJSON().Match(`{"holder_id":"` + holderID.String() + `","holder_type":"user","permissions":["read"]}`)
}
