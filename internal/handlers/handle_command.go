package handlers

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/kyzzavilable/jaseb-bot/internal/contextkeys"
	"github.com/kyzzavilable/jaseb-bot/internal/messages"
	"github.com/kyzzavilable/jaseb-bot/types"
)

func (bh *Handlers) HandleCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	cmd, ok := contextkeys.GetCommand(ctx)
	if !ok || update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	actor := types.ActorKey(update.Message.From.ID)

	switch cmd.Name {
	case "start":
		bh.handleStart(ctx, b, update)
	case "addownjs":
		bh.handleAddOwner(ctx, b, chatID, actor, cmd.Args)
	case "delownjs":
		bh.handleDelOwner(ctx, b, chatID, actor, cmd.Args)
	case "listownjs":
		bh.handleListOwners(ctx, b, chatID, actor)
	case "addakses":
		bh.handleAddPremium(ctx, b, chatID, actor, cmd.Args)
	case "delakses":
		bh.handleDelPremium(ctx, b, chatID, actor, cmd.Args)
	case "listakses":
		bh.handleListPremium(ctx, b, chatID, actor)
	case "addbl":
		bh.handleAddBlacklist(ctx, b, chatID, actor, cmd.Args)
	case "delbl":
		bh.handleDelBlacklist(ctx, b, chatID, actor, cmd.Args)
	case "listbl":
		bh.handleListBlacklist(ctx, b, chatID, actor)
	case "sharemsg":
		bh.handleShare(ctx, b, update, shareToGroups)
	case "broadcast":
		bh.handleShare(ctx, b, update, broadcastToUsers)
	case "sharemsgv2":
		bh.handleForwardShare(ctx, b, update, shareToGroups)
	case "broadcastv2":
		bh.handleForwardShare(ctx, b, update, broadcastToUsers)
	case "setpesan":
		bh.handleSetPayload(ctx, b, update)
	case "auto":
		bh.handleAuto(ctx, b, chatID, actor, cmd.Args)
	case "setjeda":
		bh.handleSetCooldown(ctx, b, chatID, actor, cmd.Args)
	case "backup":
		bh.handleBackup(ctx, b, chatID, actor)
	case "ping":
		bh.handlePing(ctx, b, chatID, actor)
	case "cekid":
		bh.handleCekID(ctx, b, update)
	default:
		log.Debug().Str("command", cmd.Name).Msg("unknown command ignored")
	}
}

// requireOwner loads state and enforces the owner tier inline.
func (bh *Handlers) requireOwner(ctx context.Context, b *bot.Bot, chatID any, actor string) (*types.State, bool) {
	st, err := bh.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("state load failed")
		return nil, false
	}
	if !bh.acl.IsOwner(st, actor) {
		sendText(ctx, b, chatID, messages.OwnerOnly())
		return nil, false
	}
	return st, true
}

func (bh *Handlers) requirePrimaryOwner(ctx context.Context, b *bot.Bot, chatID any, actor string) bool {
	if !bh.acl.IsPrimaryOwner(actor) {
		sendText(ctx, b, chatID, messages.PrimaryOwnerOnly())
		return false
	}
	return true
}

func singleIDArg(args []string) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	id := strings.TrimSpace(args[0])
	if id == "" {
		return "", false
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return "", false
	}
	return id, true
}

func (bh *Handlers) handleAddOwner(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	if !bh.requirePrimaryOwner(ctx, b, chatID, actor) {
		return
	}
	id, ok := singleIDArg(args)
	if !ok {
		sendText(ctx, b, chatID, messages.Usage("/addownjs 123456789"))
		return
	}
	var added bool
	err := bh.store.Update(func(st *types.State) error {
		added = bh.acl.AddOwner(st, id)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("addownjs failed")
		sendText(ctx, b, chatID, messages.CommandFailed("addownjs"))
		return
	}
	if added {
		sendText(ctx, b, chatID, messages.OwnerAdded(id))
	} else {
		sendText(ctx, b, chatID, messages.OwnerAlready(id))
	}
}

func (bh *Handlers) handleDelOwner(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	if !bh.requirePrimaryOwner(ctx, b, chatID, actor) {
		return
	}
	id, ok := singleIDArg(args)
	if !ok {
		sendText(ctx, b, chatID, messages.Usage("/delownjs 123456789"))
		return
	}
	var removed bool
	err := bh.store.Update(func(st *types.State) error {
		var rmErr error
		removed, rmErr = bh.acl.RemoveOwner(st, id)
		return rmErr
	})
	switch {
	case err != nil && bh.acl.IsPrimaryOwner(id):
		sendText(ctx, b, chatID, messages.CannotRemovePrimary(id))
	case err != nil:
		log.Error().Err(err).Msg("delownjs failed")
		sendText(ctx, b, chatID, messages.CommandFailed("delownjs"))
	case removed:
		sendText(ctx, b, chatID, messages.OwnerRemoved(id))
	default:
		sendText(ctx, b, chatID, messages.OwnerNotFound(id))
	}
}

func (bh *Handlers) handleListOwners(ctx context.Context, b *bot.Bot, chatID any, actor string) {
	if !bh.requirePrimaryOwner(ctx, b, chatID, actor) {
		return
	}
	st, err := bh.store.Load()
	if err != nil {
		log.Error().Err(err).Msg("listownjs failed")
		return
	}
	sendText(ctx, b, chatID, messages.OwnerList(st.Owners))
}

func (bh *Handlers) handleAddPremium(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}
	usage := messages.Usage("/addakses 123456789 3d\n\n(d = hari, h = jam)")
	if len(args) != 2 {
		sendText(ctx, b, chatID, usage)
		return
	}
	id, ok := singleIDArg(args[:1])
	if !ok {
		sendText(ctx, b, chatID, usage)
		return
	}
	dur := strings.ToLower(strings.TrimSpace(args[1]))
	if len(dur) < 2 {
		sendText(ctx, b, chatID, usage)
		return
	}
	amount, err := strconv.Atoi(dur[:len(dur)-1])
	if err != nil || amount <= 0 {
		sendText(ctx, b, chatID, usage)
		return
	}
	var seconds int64
	var unit string
	switch dur[len(dur)-1] {
	case 'd':
		seconds = int64(amount) * 86400
		unit = "hari"
	case 'h':
		seconds = int64(amount) * 3600
		unit = "jam"
	default:
		sendText(ctx, b, chatID, usage)
		return
	}

	err = bh.store.Update(func(st *types.State) error {
		base := time.Now().Unix()
		if cur, ok := st.Premium[id]; ok && !cur.Permanent && cur.Unix > base {
			base = cur.Unix
		}
		st.Premium[id] = types.ExpiryAt(base + seconds)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("addakses failed")
		sendText(ctx, b, chatID, messages.CommandFailed("addakses"))
		return
	}
	sendText(ctx, b, chatID, messages.PremiumGranted(id, amount, unit))
}

func (bh *Handlers) handleDelPremium(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}
	id, ok := singleIDArg(args)
	if !ok {
		sendText(ctx, b, chatID, messages.Usage("/delakses 123456789"))
		return
	}
	var existed bool
	err := bh.store.Update(func(st *types.State) error {
		_, existed = st.Premium[id]
		delete(st.Premium, id)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("delakses failed")
		sendText(ctx, b, chatID, messages.CommandFailed("delakses"))
		return
	}
	if existed {
		sendText(ctx, b, chatID, messages.PremiumDeleted(id))
	} else {
		sendText(ctx, b, chatID, messages.PremiumNotFound(id))
	}
}

func (bh *Handlers) handleListPremium(ctx context.Context, b *bot.Bot, chatID any, actor string) {
	st, ok := bh.requireOwner(ctx, b, chatID, actor)
	if !ok {
		return
	}
	now := time.Now().Unix()
	ids := make([]string, 0, len(st.Premium))
	for id := range st.Premium {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var lines []string
	for _, id := range ids {
		exp := st.Premium[id]
		switch {
		case exp.Permanent:
			lines = append(lines, messages.PremiumListPermanent(id))
		case exp.Unix > now:
			lines = append(lines, messages.PremiumListEntry(id, int((exp.Unix-now)/3600)))
		}
	}
	sendText(ctx, b, chatID, messages.PremiumList(lines))
}

func (bh *Handlers) handleAddBlacklist(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}
	id, ok := singleIDArg(args)
	if !ok {
		sendText(ctx, b, chatID, messages.Usage("/addbl 123456789"))
		return
	}
	var added bool
	err := bh.store.Update(func(st *types.State) error {
		added = bh.acl.Blacklist(st, id)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("addbl failed")
		sendText(ctx, b, chatID, messages.CommandFailed("addbl"))
		return
	}
	if added {
		sendText(ctx, b, chatID, messages.BlacklistAdded(id))
	} else {
		sendText(ctx, b, chatID, messages.BlacklistAlready(id))
	}
}

func (bh *Handlers) handleDelBlacklist(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	if _, ok := bh.requireOwner(ctx, b, chatID, actor); !ok {
		return
	}
	id, ok := singleIDArg(args)
	if !ok {
		sendText(ctx, b, chatID, messages.Usage("/delbl 123456789"))
		return
	}
	var removed bool
	err := bh.store.Update(func(st *types.State) error {
		removed = bh.acl.Unblacklist(st, id)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("delbl failed")
		sendText(ctx, b, chatID, messages.CommandFailed("delbl"))
		return
	}
	if removed {
		sendText(ctx, b, chatID, messages.BlacklistRemoved(id))
	} else {
		sendText(ctx, b, chatID, messages.BlacklistNotFound(id))
	}
}

func (bh *Handlers) handleListBlacklist(ctx context.Context, b *bot.Bot, chatID any, actor string) {
	st, ok := bh.requireOwner(ctx, b, chatID, actor)
	if !ok {
		return
	}
	sendText(ctx, b, chatID, messages.BlacklistList(st.Blacklist))
}

func (bh *Handlers) handleSetCooldown(ctx context.Context, b *bot.Bot, chatID any, actor string, args []string) {
	st, ok := bh.requireOwner(ctx, b, chatID, actor)
	if !ok {
		return
	}
	if len(args) == 0 {
		sendText(ctx, b, chatID, messages.CooldownCurrent(st.CooldownMinutes()))
		return
	}
	minutes, err := strconv.Atoi(args[0])
	if err != nil || minutes <= 0 {
		sendText(ctx, b, chatID, messages.Usage("/setjeda 15"))
		return
	}
	err = bh.store.Update(func(st *types.State) error {
		st.SetCooldownMinutes(minutes)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("setjeda failed")
		sendText(ctx, b, chatID, messages.CommandFailed("setjeda"))
		return
	}
	sendText(ctx, b, chatID, messages.CooldownUpdated(minutes))
}
