package dispatch_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/realtime"
)

func TestBind_ChatFrames(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := realtime.NewProtocol(logx.Nop())
	f.d.Bind(p)

	ownerConn := f.connect("o", owner)
	customerConn := f.connect("c", customer)
	ctx := context.Background()

	f.chat.EXPECT().GetConversation(gomock.Any(), int64(7)).Return(conv7(), nil).Times(3)
	f.chat.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(nil)
	f.chat.EXPECT().UpdatePreview(gomock.Any(), gomock.Any()).Return(nil)
	f.chat.EXPECT().MarkRead(gomock.Any(), int64(7), owner).Return(int64(1), nil)

	p.Dispatch(ctx, ownerConn, []byte(`{"type":"join_conversation","data":{"conversation_id":7}}`))
	require.True(t, f.hub.InRoom(7, owner))

	p.Dispatch(ctx, customerConn, []byte(`{"type":"send_message","data":{"conversation_id":7,"body":"Hello"}}`))
	got := ownerConn.Of(domain.EventNewMessage)
	require.Len(t, got, 1)
	require.Equal(t, "Hello", got[0].Payload.(domain.ChatMessage).Body)

	p.Dispatch(ctx, ownerConn, []byte(`{"type":"mark_read","data":{"conversation_id":7}}`))
	require.Len(t, ownerConn.Of(domain.EventMessagesRead), 1)

	p.Dispatch(ctx, ownerConn, []byte(`{"type":"leave_conversation","data":{"conversation_id":7}}`))
	require.False(t, f.hub.InRoom(7, owner))
	require.Empty(t, ownerConn.Of(domain.EventError))
}

func TestBind_RejectsBadFrames(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := realtime.NewProtocol(logx.Nop())
	f.d.Bind(p)

	stranger := f.connect("s", domain.Identity{Role: domain.RoleCustomer, ID: 99})
	f.chat.EXPECT().GetConversation(gomock.Any(), int64(7)).Return(conv7(), nil)

	p.Dispatch(context.Background(), stranger, []byte(`{"type":"send_message","data":{"conversation_id":7}}`))
	p.Dispatch(context.Background(), stranger, []byte(`{"type":"join_conversation","data":{"conversation_id":7}}`))

	errs := stranger.Of(domain.EventError)
	require.Len(t, errs, 2)
	require.Equal(t, realtime.ErrorPayload{Frame: "send_message", Error: "invalid input"}, errs[0].Payload)
	require.Equal(t, realtime.ErrorPayload{Frame: "join_conversation", Error: "forbidden"}, errs[1].Payload)
}
