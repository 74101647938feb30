package model

import (
	"context"
	"net/http"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cogview/internal/logging"
	"github.com/shhac/cogview/internal/requests"
)

func TestPersonGroupViewModel_RequestFor(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	vm := NewPersonGroupViewModel(newFakeService().mediator(), logging.NewNopLogger())
	_ = vm.GroupID.Set("family")
	_ = vm.Name.Set("Family")
	_ = vm.PersonName.Set("Ann")

	for _, op := range PersonGroupOps() {
		req := vm.RequestFor(op)
		assert.NotEmpty(t, req.Method, op)
		assert.NotEmpty(t, req.DocURL, op)
	}

	assert.Equal(t, requests.CreatePersonGroup("family", "Family"), vm.RequestFor(OpCreateGroup))
	assert.Equal(t, http.MethodDelete, vm.RequestFor(OpDeleteGroup).Method)
	assert.Equal(t, "/face/v1.0/persongroups/family/persons", vm.RequestFor(OpCreatePerson).Path)
	assert.Contains(t, vm.RequestFor(OpCreatePerson).Body, `"name":"Ann"`)
}

func TestPersonGroupViewModel_CreateWithRecognitionModel(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	vm := NewPersonGroupViewModel(newFakeService().mediator(), logging.NewNopLogger())
	_ = vm.GroupID.Set("family")
	_ = vm.Name.Set("Family")
	_ = vm.UserData.Set("household")
	_ = vm.RecognitionModel.Set(requests.RecognitionModel03)

	req := vm.RequestFor(OpCreateGroup)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.JSONEq(t, `{"name":"Family","userData":"household","recognitionModel":"recognition_03"}`, req.Body)

	_ = vm.RecognitionModel.Set("")
	assert.JSONEq(t, `{"name":"Family","userData":"household"}`, vm.RequestFor(OpCreateGroup).Body)
}

func TestPersonGroupViewModel_List(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	svc := newFakeService()
	svc.responses["/face/v1.0/persongroups"] = `[{"personGroupId":"family","name":"Family"}]`
	vm := NewPersonGroupViewModel(svc.mediator(), logging.NewNopLogger())

	vm.List(context.Background())

	groups, _ := vm.Groups.Get()
	assert.Equal(t, `[{"personGroupId":"family","name":"Family"}]`, groups)
	result, _ := vm.Result.Get()
	assert.Empty(t, result)
}

func TestPersonGroupViewModel_CreateRefreshesList(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	svc := newFakeService()
	svc.responses["/face/v1.0/persongroups"] = `[{"personGroupId":"family"}]`
	vm := NewPersonGroupViewModel(svc.mediator(), logging.NewNopLogger())
	_ = vm.GroupID.Set("family")
	_ = vm.Name.Set("Family")

	vm.Create(context.Background())

	require.Len(t, svc.sent, 2)
	assert.Equal(t, http.MethodPut, svc.sent[0].Method)
	assert.Equal(t, http.MethodGet, svc.sent[1].Method)
	groups, _ := vm.Groups.Get()
	assert.Equal(t, `[{"personGroupId":"family"}]`, groups)
}

func TestPersonGroupViewModel_TrainDoesNotRefresh(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	svc := newFakeService()
	vm := NewPersonGroupViewModel(svc.mediator(), logging.NewNopLogger())
	_ = vm.GroupID.Set("family")

	vm.Train(context.Background())
	vm.TrainingStatus(context.Background())

	require.Len(t, svc.sent, 2)
	assert.Equal(t, "/face/v1.0/persongroups/family/train", svc.sent[0].Path)
	assert.Equal(t, "/face/v1.0/persongroups/family/training", svc.sent[1].Path)
}
