package adapters

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/errors"
	"github.com/soffa-projects/bugout-go/test"
)

func newGroupClient(t *testing.T) (*GroupClient, *test.StubServer) {
	stub := test.NewStubServer(t)
	brood, err := NewTransport(ServiceBrood, stub.URL, time.Second, nil)
	test.NewAssertions(t).Nil(err)
	return NewGroupClient(brood), stub
}

func TestGroupClient_CreateAndRename(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newGroupClient(t)
	groupID := uuid.New()
	stub.OnJSON("POST", "/group", http.StatusOK, map[string]any{"id": groupID, "group_name": "ops", "autogenerated": false})
	stub.OnJSON("PUT", "/group/"+groupID.String()+"/name", http.StatusOK, map[string]any{"id": groupID, "group_name": "sre"})

	group, err := client.CreateGroup(context.Background(), f.Bearer("token"), "ops")
	assert.Nil(err)
	assert.Equals(group.ID, groupID)
	assert.Equals(*group.GroupName, "ops")
	assert.Equals(stub.Last().Form.Get("group_name"), "ops")

	group, err = client.UpdateGroup(context.Background(), f.Bearer("token"), groupID, "sre")
	assert.Nil(err)
	assert.Equals(*group.GroupName, "sre")
	assert.Equals(stub.Last().Method, "PUT")
}

func TestGroupClient_FindGroup(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newGroupClient(t)
	groupID := uuid.New()
	stub.OnJSON("GET", "/groups/find", http.StatusOK, map[string]any{"id": groupID})

	_, err := client.FindGroup(context.Background(), f.Bearer("token"), groupID)
	assert.Nil(err)
	assert.Equals(stub.Last().Query.Get("group_id"), groupID.String())
}

func TestGroupClient_SetUserGroup(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newGroupClient(t)
	groupID := uuid.New()
	path := "/group/" + groupID.String() + "/role"
	stub.OnJSON("POST", path, http.StatusOK, map[string]any{"group_id": groupID, "user_id": uuid.New(), "user_type": "member"})
	stub.OnJSON("DELETE", path, http.StatusOK, map[string]any{"group_id": groupID, "user_id": uuid.New(), "user_type": "member"})

	user, err := client.SetUserGroup(context.Background(), f.Bearer("token"), groupID, f.RoleMember, f.GroupMember{Email: "trinity@example.com"})
	assert.Nil(err)
	assert.Equals(user.GroupID, groupID)
	form := stub.Last().Form
	assert.Equals(form.Get("user_type"), "member")
	assert.Equals(form.Get("email"), "trinity@example.com")
	assert.False(form.Has("username"))

	_, err = client.DeleteUserGroup(context.Background(), f.Bearer("token"), groupID, f.GroupMember{Username: "trinity"})
	assert.Nil(err)
	assert.Equals(stub.Last().Method, "DELETE")
	assert.Equals(stub.Last().Form.Get("username"), "trinity")
}

func TestGroupClient_MemberRequired(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newGroupClient(t)

	_, err := client.SetUserGroup(context.Background(), f.Bearer("token"), uuid.New(), f.RoleOwner, f.GroupMember{})
	var invalid *errors.InvalidParametersError
	assert.True(stderrors.As(err, &invalid))

	_, err = client.DeleteUserGroup(context.Background(), f.Bearer("token"), uuid.New(), f.GroupMember{})
	assert.True(stderrors.As(err, &invalid))
	assert.Len(stub.Requests(), 0)
}

func TestGroupClient_Applications(t *testing.T) {
	assert := test.NewAssertions(t)
	client, stub := newGroupClient(t)
	groupID := uuid.New()
	appID := uuid.New()
	stub.OnJSON("POST", "/applications", http.StatusOK, map[string]any{"id": appID, "group_id": groupID, "name": "app"})
	stub.OnJSON("GET", "/applications", http.StatusOK, map[string]any{"applications": []map[string]any{{"id": appID, "group_id": groupID, "name": "app"}}})
	stub.OnJSON("DELETE", "/applications/"+appID.String(), http.StatusOK, map[string]any{"id": appID, "group_id": groupID, "name": "app"})

	app, err := client.CreateApplication(context.Background(), f.Bearer("token"), groupID, "app", "")
	assert.Nil(err)
	assert.Equals(app.ID, appID)
	assert.Equals(stub.Last().Form.Get("group_id"), groupID.String())
	assert.False(stub.Last().Form.Has("description"))

	apps, err := client.ListApplications(context.Background(), f.Bearer("token"), nil)
	assert.Nil(err)
	assert.Len(apps.Applications, 1)
	assert.False(stub.Last().Query.Has("group_id"))

	_, err = client.ListApplications(context.Background(), f.Bearer("token"), &groupID)
	assert.Nil(err)
	assert.Equals(stub.Last().Query.Get("group_id"), groupID.String())

	_, err = client.DeleteApplication(context.Background(), f.Bearer("token"), appID)
	assert.Nil(err)
	assert.Equals(stub.Last().Header.Get("Authorization"), "Bearer token")
}
