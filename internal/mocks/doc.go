// Package mocks holds gomock doubles for the port interfaces.
package mocks

//go:generate mockgen -source=../port/order/order.go -destination=order.go -package=mocks -mock_names=Repository=MockOrderRepository,OwnershipChecker=MockOwnershipChecker
//go:generate mockgen -source=../port/chat/chat.go -destination=chat.go -package=mocks -mock_names=Repository=MockChatRepository
//go:generate mockgen -source=../port/presence/presence.go -destination=presence.go -package=mocks -mock_names=Repository=MockPresenceRepository
//go:generate mockgen -source=../port/eventbus/eventbus.go -destination=eventbus.go -package=mocks -mock_names=EventBus=MockEventBus
//go:generate mockgen -source=../port/locker/locker.go -destination=locker.go -package=mocks -mock_names=AdvisoryLocker=MockAdvisoryLocker
//go:generate mockgen -source=../port/notifier/notifier.go -destination=notifier.go -package=mocks -mock_names=WorkerNotifier=MockWorkerNotifier
