package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	author   = Actor{EmployeeID: 10, Role: RoleEmployee}
	other    = Actor{EmployeeID: 11, Role: RoleEmployee}
	admin    = Actor{EmployeeID: 1, Role: RoleAdmin}
	stranger = Actor{EmployeeID: 99, Role: "Customer"}
)

func draftPost() *Post {
	return &Post{ID: 1, EmployeeID: author.EmployeeID, Status: PostStatusDraft}
}

func TestApplyPostAction_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		status string
		action PostAction
		want   string
	}{
		{"submit by owner", author, PostStatusDraft, PostActionSubmit, PostStatusPending},
		{"approve by admin", admin, PostStatusPending, PostActionApprove, PostStatusPublished},
		{"reject by admin", admin, PostStatusPending, PostActionReject, PostStatusUnpublished},
		{"unpublish by admin", admin, PostStatusPublished, PostActionUnpublish, PostStatusUnpublished},
		{"restore by admin", admin, PostStatusUnpublished, PostActionRestore, PostStatusPublished},
		{"delete by owner", author, PostStatusUnpublished, PostActionDelete, PostStatusDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := draftPost()
			post.Status = tt.status

			got, err := ApplyPostAction(tt.actor, post, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyPostAction_AuthorizationBeforeState(t *testing.T) {
	// 权限校验先于状态校验：状态不对的情况下，无权限者得到的也是权限错误
	post := draftPost()
	post.Status = PostStatusPublished

	_, err := ApplyPostAction(other, post, PostActionSubmit)
	require.Error(t, err)
	assert.Equal(t, ErrKindUnauthorized, KindOf(err))

	_, err = ApplyPostAction(author, post, PostActionApprove)
	require.Error(t, err)
	assert.Equal(t, ErrKindUnauthorized, KindOf(err))
}

func TestApplyPostAction_InvalidState(t *testing.T) {
	post := draftPost()

	// 草稿不能直接审核通过
	_, err := ApplyPostAction(admin, post, PostActionApprove)
	require.Error(t, err)
	assert.Equal(t, ErrKindInvalidOperation, KindOf(err))

	// 终态之后任何动作都被拒绝
	post.Status = PostStatusDeleted
	for _, action := range []PostAction{PostActionSubmit, PostActionApprove, PostActionReject, PostActionUnpublish, PostActionRestore, PostActionDelete} {
		actor := admin
		if action == PostActionSubmit || action == PostActionDelete {
			actor = author
		}
		_, err := ApplyPostAction(actor, post, action)
		assert.Error(t, err, "action %s", action)
	}
}

func TestApplyPostAction_SubmitTwice(t *testing.T) {
	post := draftPost()

	status, err := ApplyPostAction(author, post, PostActionSubmit)
	require.NoError(t, err)
	post.Status = status

	// 第二次提交必须失败：状态已是待审核
	_, err = ApplyPostAction(author, post, PostActionSubmit)
	require.Error(t, err)
	assert.Equal(t, ErrKindInvalidOperation, KindOf(err))
}

// 完整场景：作者建稿提交 -> 非管理员审核被拒 -> 管理员审核通过
func TestPostLifecycleScenario(t *testing.T) {
	post := draftPost()

	status, err := ApplyPostAction(author, post, PostActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, PostStatusPending, status)
	post.Status = status

	_, err = ApplyPostAction(other, post, PostActionApprove)
	require.Error(t, err)
	assert.Equal(t, ErrKindUnauthorized, KindOf(err))

	status, err = ApplyPostAction(admin, post, PostActionApprove)
	require.NoError(t, err)
	assert.Equal(t, PostStatusPublished, status)
}

func TestPostReadScope(t *testing.T) {
	ownOnly, err := PostReadScope(admin)
	require.NoError(t, err)
	assert.False(t, ownOnly)

	ownOnly, err = PostReadScope(author)
	require.NoError(t, err)
	assert.True(t, ownOnly)

	_, err = PostReadScope(stranger)
	require.Error(t, err)
	assert.Equal(t, ErrKindUnauthorized, KindOf(err))
}

func TestPostVisibleTo(t *testing.T) {
	post := draftPost()

	assert.NoError(t, PostVisibleTo(admin, post))
	assert.NoError(t, PostVisibleTo(author, post))

	// 其他员工看不到，表现为不存在
	err := PostVisibleTo(other, post)
	require.Error(t, err)
	assert.Equal(t, ErrKindNotFound, KindOf(err))

	err = PostVisibleTo(stranger, post)
	require.Error(t, err)
	assert.Equal(t, ErrKindUnauthorized, KindOf(err))
}
