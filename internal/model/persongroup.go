package model

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2/data/binding"

	"github.com/shhac/cogview/internal/domain"
	"github.com/shhac/cogview/internal/mediator"
	"github.com/shhac/cogview/internal/requests"
)

// PersonGroupOp identifies a person group operation offered in the UI.
type PersonGroupOp string

const (
	OpListGroups     PersonGroupOp = "List Groups"
	OpGetGroup       PersonGroupOp = "Get Group"
	OpCreateGroup    PersonGroupOp = "Create Group"
	OpUpdateGroup    PersonGroupOp = "Update Group"
	OpDeleteGroup    PersonGroupOp = "Delete Group"
	OpTrainGroup     PersonGroupOp = "Train"
	OpTrainingStatus PersonGroupOp = "Training Status"
	OpCreatePerson   PersonGroupOp = "Add Person"
	OpListPersons    PersonGroupOp = "List Persons"
)

// PersonGroupOps lists the operations in display order.
func PersonGroupOps() []PersonGroupOp {
	return []PersonGroupOp{
		OpListGroups, OpGetGroup, OpCreateGroup, OpUpdateGroup, OpDeleteGroup,
		OpTrainGroup, OpTrainingStatus, OpCreatePerson, OpListPersons,
	}
}

// refreshesGroups reports whether a successful op changes the group list.
func (op PersonGroupOp) refreshesGroups() bool {
	switch op {
	case OpCreateGroup, OpUpdateGroup, OpDeleteGroup:
		return true
	}
	return false
}

// PersonGroupViewModel holds the person group form, the group list, and the
// result of the last operation.
type PersonGroupViewModel struct {
	*viewModel

	GroupID    binding.String
	Name       binding.String
	UserData   binding.String
	PersonName binding.String

	// RecognitionModel applies to Create only; empty leaves the service default.
	RecognitionModel binding.String

	Groups binding.String // JSON from the last list call
	Result binding.String // JSON from the last other call
}

// NewPersonGroupViewModel creates an empty person group view model.
func NewPersonGroupViewModel(m *mediator.Mediator, logger *slog.Logger) *PersonGroupViewModel {
	return &PersonGroupViewModel{
		viewModel:        newViewModel(domain.ServiceFace, m, logger),
		GroupID:          binding.NewString(),
		Name:             binding.NewString(),
		UserData:         binding.NewString(),
		PersonName:       binding.NewString(),
		RecognitionModel: binding.NewString(),
		Groups:           binding.NewString(),
		Result:           binding.NewString(),
	}
}

// RequestFor rebuilds the descriptor for op from the current field values.
func (vm *PersonGroupViewModel) RequestFor(op PersonGroupOp) domain.Request {
	groupID, _ := vm.GroupID.Get()
	name, _ := vm.Name.Get()
	userData, _ := vm.UserData.Get()
	personName, _ := vm.PersonName.Get()

	switch op {
	case OpGetGroup:
		return requests.GetPersonGroup(groupID)
	case OpCreateGroup:
		return requests.CreatePersonGroup(groupID, name, vm.createOptions(userData)...)
	case OpUpdateGroup:
		return requests.UpdatePersonGroup(groupID, name, userData)
	case OpDeleteGroup:
		return requests.DeletePersonGroup(groupID)
	case OpTrainGroup:
		return requests.TrainPersonGroup(groupID)
	case OpTrainingStatus:
		return requests.GetPersonGroupTrainingStatus(groupID)
	case OpCreatePerson:
		return requests.CreatePerson(groupID, personName, "")
	case OpListPersons:
		return requests.ListPersons(groupID)
	default:
		return requests.ListPersonGroups("", 0)
	}
}

func (vm *PersonGroupViewModel) createOptions(userData string) []requests.PersonGroupOption {
	var opts []requests.PersonGroupOption
	if userData != "" {
		opts = append(opts, requests.WithUserData(userData))
	}
	if model, _ := vm.RecognitionModel.Get(); model != "" {
		opts = append(opts, requests.WithRecognitionModel(model))
	}
	return opts
}

// Run executes op. Listing stores into Groups; every other op stores into
// Result, and ops that change the group list refresh it afterwards.
func (vm *PersonGroupViewModel) Run(ctx context.Context, op PersonGroupOp) {
	done, ok := vm.begin()
	if !ok {
		return
	}
	defer done()

	cfg, ok := vm.config(ctx)
	if !ok {
		return
	}

	body, ok := vm.execute(ctx, vm.RequestFor(op), cfg)
	if !ok {
		return
	}
	if op == OpListGroups {
		_ = vm.Groups.Set(body)
		return
	}
	_ = vm.Result.Set(body)

	if op.refreshesGroups() {
		if groups, ok := vm.execute(ctx, vm.RequestFor(OpListGroups), cfg); ok {
			_ = vm.Groups.Set(groups)
		}
	}
}

// List refreshes the group list.
func (vm *PersonGroupViewModel) List(ctx context.Context) { vm.Run(ctx, OpListGroups) }

// Get fetches the group named by GroupID.
func (vm *PersonGroupViewModel) Get(ctx context.Context) { vm.Run(ctx, OpGetGroup) }

// Create creates the group from GroupID, Name and UserData.
func (vm *PersonGroupViewModel) Create(ctx context.Context) { vm.Run(ctx, OpCreateGroup) }

// Update renames the group or replaces its user data.
func (vm *PersonGroupViewModel) Update(ctx context.Context) { vm.Run(ctx, OpUpdateGroup) }

// Delete removes the group.
func (vm *PersonGroupViewModel) Delete(ctx context.Context) { vm.Run(ctx, OpDeleteGroup) }

// Train queues a training task for the group.
func (vm *PersonGroupViewModel) Train(ctx context.Context) { vm.Run(ctx, OpTrainGroup) }

// TrainingStatus fetches the group's training status.
func (vm *PersonGroupViewModel) TrainingStatus(ctx context.Context) { vm.Run(ctx, OpTrainingStatus) }
