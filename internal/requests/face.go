package requests

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/shhac/cogview/internal/domain"
)

const (
	faceBasePath = "/face/v1.0"
	faceDocBase  = "https://westus.dev.cognitive.microsoft.com/docs/services/563879b61984550e40cbbe8d/operations/"
	faceCost     = "1 transaction"

	// DefaultListTop is the page size used when listing person groups.
	DefaultListTop = 1000
)

// Recognition and detection models accepted by the Face API.
const (
	RecognitionModel01 = "recognition_01"
	RecognitionModel02 = "recognition_02"
	RecognitionModel03 = "recognition_03"
	DetectionModel01   = "detection_01"
	DetectionModel02   = "detection_02"
)

// personGroupBody is the payload for creating or updating a person group.
type personGroupBody struct {
	Name             string `json:"name"`
	UserData         string `json:"userData,omitempty"`
	RecognitionModel string `json:"recognitionModel,omitempty"`
}

// RecognitionModels lists the recognition models a person group can be created with.
func RecognitionModels() []string {
	return []string{RecognitionModel01, RecognitionModel02, RecognitionModel03}
}

// PersonGroupOption sets optional fields on a person group create request.
type PersonGroupOption func(*personGroupBody)

// WithUserData attaches user-provided data to the person group.
func WithUserData(userData string) PersonGroupOption {
	return func(b *personGroupBody) { b.UserData = userData }
}

// WithRecognitionModel selects the recognition model for the person group.
func WithRecognitionModel(model string) PersonGroupOption {
	return func(b *personGroupBody) { b.RecognitionModel = model }
}

func personGroupPath(groupID string) string {
	return faceBasePath + "/persongroups/" + url.PathEscape(groupID)
}

func faceRequest(method, path, docID string) domain.Request {
	return domain.Request{
		Method:      method,
		ContentType: domain.ContentTypeJSON,
		Path:        path,
		Cost:        faceCost,
		DocURL:      faceDocBase + docID,
	}
}

// CreatePersonGroup builds a PUT that creates a person group with the given ID.
func CreatePersonGroup(groupID, name string, opts ...PersonGroupOption) domain.Request {
	body := personGroupBody{Name: name}
	for _, o := range opts {
		o(&body)
	}

	req := faceRequest(http.MethodPut, personGroupPath(groupID), "563879b61984550f30395244")
	req.Body = encodeBody(body)
	return req
}

// GetPersonGroup builds a GET for a single person group.
func GetPersonGroup(groupID string) domain.Request {
	req := faceRequest(http.MethodGet, personGroupPath(groupID), "563879b61984550f30395246")
	req.Query = encodeQuery(struct {
		ReturnRecognitionModel bool `schema:"returnRecognitionModel"`
	}{ReturnRecognitionModel: true})
	return req
}

// ListPersonGroups builds a GET listing person groups ordered by ID, each with
// its recognition model.
// An empty start lists from the beginning; top <= 0 uses DefaultListTop.
func ListPersonGroups(start string, top int) domain.Request {
	if top <= 0 {
		top = DefaultListTop
	}

	req := faceRequest(http.MethodGet, faceBasePath+"/persongroups", "563879b61984550f30395248")
	req.Query = encodeQuery(struct {
		Start                  string `schema:"start,omitempty"`
		Top                    int    `schema:"top"`
		ReturnRecognitionModel bool   `schema:"returnRecognitionModel"`
	}{Start: start, Top: top, ReturnRecognitionModel: true})
	return req
}

// UpdatePersonGroup builds a PATCH that renames a person group or replaces its user data.
func UpdatePersonGroup(groupID, name, userData string) domain.Request {
	req := faceRequest(http.MethodPatch, personGroupPath(groupID), "563879b61984550f3039524a")
	req.Body = encodeBody(personGroupBody{Name: name, UserData: userData})
	return req
}

// DeletePersonGroup builds a DELETE for a person group and all of its persons.
func DeletePersonGroup(groupID string) domain.Request {
	return faceRequest(http.MethodDelete, personGroupPath(groupID), "563879b61984550f30395245")
}

// TrainPersonGroup builds a POST that queues a training task.
func TrainPersonGroup(groupID string) domain.Request {
	return faceRequest(http.MethodPost, personGroupPath(groupID)+"/train", "563879b61984550f30395249")
}

// GetPersonGroupTrainingStatus builds a GET for the latest training status.
func GetPersonGroupTrainingStatus(groupID string) domain.Request {
	return faceRequest(http.MethodGet, personGroupPath(groupID)+"/training", "563879b61984550f30395247")
}

// CreatePerson builds a POST that adds a person to a person group.
func CreatePerson(groupID, name, userData string) domain.Request {
	req := faceRequest(http.MethodPost, personGroupPath(groupID)+"/persons", "563879b61984550f3039523c")
	req.Body = encodeBody(struct {
		Name     string `json:"name"`
		UserData string `json:"userData,omitempty"`
	}{Name: name, UserData: userData})
	return req
}

// ListPersons builds a GET listing the persons in a person group.
func ListPersons(groupID string) domain.Request {
	return faceRequest(http.MethodGet, personGroupPath(groupID)+"/persons", "563879b61984550f30395241")
}

// DetectOptions controls which face properties the detect call returns.
type DetectOptions struct {
	ReturnFaceID        bool
	ReturnFaceLandmarks bool
	Attributes          []string // e.g. "age", "gender", "emotion"
	RecognitionModel    string
	DetectionModel      string
}

// DefaultDetectOptions returns the options used by the detect view.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		ReturnFaceID:     true,
		RecognitionModel: RecognitionModel03,
		DetectionModel:   DetectionModel01,
	}
}

// FaceAttributes lists the attribute names accepted by returnFaceAttributes.
func FaceAttributes() []string {
	return []string{
		"age", "gender", "headPose", "smile", "facialHair", "glasses",
		"emotion", "hair", "makeup", "occlusion", "accessories", "blur",
		"exposure", "noise",
	}
}

// DetectFaces builds a POST that detects faces in the image at imageURL.
func DetectFaces(imageURL string, opts DetectOptions) domain.Request {
	req := faceRequest(http.MethodPost, faceBasePath+"/detect", "563879b61984550f30395236")
	req.Query = encodeQuery(struct {
		ReturnFaceID         bool   `schema:"returnFaceId"`
		ReturnFaceLandmarks  bool   `schema:"returnFaceLandmarks"`
		ReturnFaceAttributes string `schema:"returnFaceAttributes,omitempty"`
		RecognitionModel     string `schema:"recognitionModel,omitempty"`
		DetectionModel       string `schema:"detectionModel,omitempty"`
	}{
		ReturnFaceID:         opts.ReturnFaceID,
		ReturnFaceLandmarks:  opts.ReturnFaceLandmarks,
		ReturnFaceAttributes: strings.Join(opts.Attributes, ","),
		RecognitionModel:     opts.RecognitionModel,
		DetectionModel:       opts.DetectionModel,
	})
	req.Body = encodeBody(struct {
		URL string `json:"url"`
	}{URL: imageURL})
	return req
}
