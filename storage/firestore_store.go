package storage

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rotisserie/eris"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/genproto/googleapis/type/latlng"

	"atm-scraper/models"
)

type firestoreAddress struct {
	City          string `firestore:"city"`
	Country       string `firestore:"country"`
	FullAddress   string `firestore:"fullAddress"`
	PostalCode    string `firestore:"postalCode"`
	StateProvince string `firestore:"stateProvince"`
	StreetAddress string `firestore:"streetAddress"`
}

type firestoreReportedBy struct {
	AppVersion  string `firestore:"appVersion"`
	DeviceID    string `firestore:"deviceId"`
	DeviceModel string `firestore:"deviceModel"`
	OSVersion   string `firestore:"osVersion"`
}

type firestoreStatus struct {
	ReportedBy firestoreReportedBy `firestore:"reportedBy"`
	Status     string              `firestore:"status"`
	Timestamp  time.Time           `firestore:"timestamp"`
}

type firestoreLocation struct {
	Geohash  string         `firestore:"geohash"`
	GeoPoint *latlng.LatLng `firestore:"geopoint"`
}

// firestoreRecord is the document layout in the collection. The bank is a
// reference into the parent collection, the point a native GeoPoint.
type firestoreRecord struct {
	Address            firestoreAddress       `firestore:"address"`
	Bank               *firestore.DocumentRef `firestore:"bank"`
	CreatedAt          time.Time              `firestore:"createdAt"`
	UpdatedAt          time.Time              `firestore:"updatedAt"`
	ExternalID         string                 `firestore:"externalId"`
	ID                 string                 `firestore:"id"`
	LastReportedStatus firestoreStatus        `firestore:"lastReportedStatus"`
	Location           firestoreLocation      `firestore:"location"`
	Name               string                 `firestore:"name"`
	QRCode             string                 `firestore:"qrCode"`
	Status             string                 `firestore:"status"`
	AddedBy            string                 `firestore:"addedBy"`
}

// FirestoreStore persists records into a Firestore collection.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore connects to Firestore. An empty credentialsFile uses the
// application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile, collection string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "firestore: new client")
	}
	return &FirestoreStore{client: client, collection: collection}, nil
}

func (s *FirestoreStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	iter := s.client.Collection(s.collection).Where("name", "==", name).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "firestore: lookup %q", name)
	}
	return true, nil
}

// Create adds the document, then sets it again with its generated id.
func (s *FirestoreStore) Create(ctx context.Context, rec *models.CanonicalRecord) (string, error) {
	doc, err := s.toDocument(rec)
	if err != nil {
		return "", err
	}

	ref, _, err := s.client.Collection(s.collection).Add(ctx, doc)
	if err != nil {
		return "", eris.Wrapf(err, "firestore: add %q", rec.Name)
	}

	doc.ID = ref.ID
	if _, err := ref.Set(ctx, doc); err != nil {
		return "", eris.Wrapf(err, "firestore: set id %s", ref.ID)
	}

	rec.ID = ref.ID
	return ref.ID, nil
}

func (s *FirestoreStore) toDocument(rec *models.CanonicalRecord) (*firestoreRecord, error) {
	bank := s.client.Doc(rec.Bank)
	if bank == nil {
		return nil, eris.Errorf("firestore: invalid bank document path %q", rec.Bank)
	}

	return &firestoreRecord{
		Address: firestoreAddress{
			City:          rec.Address.City,
			Country:       rec.Address.Country,
			FullAddress:   rec.Address.FullAddress,
			PostalCode:    rec.Address.PostalCode,
			StateProvince: rec.Address.StateProvince,
			StreetAddress: rec.Address.StreetAddress,
		},
		Bank:       bank,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		ExternalID: rec.ExternalID,
		ID:         rec.ID,
		LastReportedStatus: firestoreStatus{
			ReportedBy: firestoreReportedBy{
				AppVersion:  rec.LastReportedStatus.ReportedBy.AppVersion,
				DeviceID:    rec.LastReportedStatus.ReportedBy.DeviceID,
				DeviceModel: rec.LastReportedStatus.ReportedBy.DeviceModel,
				OSVersion:   rec.LastReportedStatus.ReportedBy.OSVersion,
			},
			Status:    rec.LastReportedStatus.Status,
			Timestamp: rec.LastReportedStatus.Timestamp,
		},
		Location: firestoreLocation{
			Geohash: rec.Location.Geohash,
			GeoPoint: &latlng.LatLng{
				Latitude:  rec.Location.GeoPoint.Lat,
				Longitude: rec.Location.GeoPoint.Lng,
			},
		},
		Name:    rec.Name,
		QRCode:  rec.QRCode,
		Status:  rec.Status,
		AddedBy: rec.AddedBy,
	}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
