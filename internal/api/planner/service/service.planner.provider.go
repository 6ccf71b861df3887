package plannersvc

import (
	"sync"
)

// Các service planner dùng chung một instance trong toàn app:
// WriterPool autosave và trạng thái đồng bộ phải là một, dù được gọi từ
// handler planner, chat, live hay snapshot worker.
var (
	clientServiceOnce sync.Once
	clientService     *ClientService
	clientServiceErr  error

	postServiceOnce sync.Once
	postService     *PostService
	postServiceErr  error

	eventServiceOnce sync.Once
	eventService     *EventService
	eventServiceErr  error

	paidServiceOnce sync.Once
	paidService     *PaidService
	paidServiceErr  error

	snapshotServiceOnce sync.Once
	snapshotService     *SnapshotService
	snapshotServiceErr  error
)

// GetClientService trả về instance ClientService dùng chung
func GetClientService() (*ClientService, error) {
	clientServiceOnce.Do(func() {
		clientService, clientServiceErr = NewClientService()
	})
	return clientService, clientServiceErr
}

// GetPostService trả về instance PostService dùng chung
func GetPostService() (*PostService, error) {
	postServiceOnce.Do(func() {
		postService, postServiceErr = NewPostService()
	})
	return postService, postServiceErr
}

// GetEventService trả về instance EventService dùng chung
func GetEventService() (*EventService, error) {
	eventServiceOnce.Do(func() {
		eventService, eventServiceErr = NewEventService()
	})
	return eventService, eventServiceErr
}

// GetPaidService trả về instance PaidService dùng chung
func GetPaidService() (*PaidService, error) {
	paidServiceOnce.Do(func() {
		paidService, paidServiceErr = NewPaidService()
	})
	return paidService, paidServiceErr
}

// GetSnapshotService trả về instance SnapshotService dùng chung
func GetSnapshotService() (*SnapshotService, error) {
	snapshotServiceOnce.Do(func() {
		var postSvc *PostService
		var eventSvc *EventService
		var paidSvc *PaidService

		if postSvc, snapshotServiceErr = GetPostService(); snapshotServiceErr != nil {
			return
		}
		if eventSvc, snapshotServiceErr = GetEventService(); snapshotServiceErr != nil {
			return
		}
		if paidSvc, snapshotServiceErr = GetPaidService(); snapshotServiceErr != nil {
			return
		}
		snapshotService, snapshotServiceErr = NewSnapshotService(postSvc, eventSvc, paidSvc)
	})
	return snapshotService, snapshotServiceErr
}
