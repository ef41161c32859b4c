package roll

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	platformgrpc "github.com/louisbranch/poolsheet/internal/platform/grpc"
	"github.com/louisbranch/poolsheet/internal/rules/roll"
	sheetservice "github.com/louisbranch/poolsheet/internal/services/sheet/api/grpc/sheet"
	"google.golang.org/protobuf/types/known/structpb"
)

// remoteCharacterName names the character created when -character is empty.
const remoteCharacterName = "roll"

// evaluateRemote rolls and burns on the server at cfg.Addr, then evaluates
// the stored roll the same way the local path does.
func evaluateRemote(ctx context.Context, cfg Config) (output, error) {
	if strings.TrimSpace(cfg.Values) != "" || cfg.Lock >= 0 {
		return output{}, errors.New("-values and -lock only work without -addr")
	}
	kw, mode, err := keywordAndMode(cfg)
	if err != nil {
		return output{}, err
	}
	seed, err := parseSeed(cfg.Seed)
	if err != nil {
		return output{}, err
	}
	var burns []int
	if strings.TrimSpace(cfg.Burn) != "" {
		if burns, err = parseInts("burn", cfg.Burn); err != nil {
			return output{}, err
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := platformgrpc.Dial(ctx, cfg.Addr, platformgrpc.DialConfig{Service: sheetservice.ServiceName})
	if err != nil {
		return output{}, err
	}
	defer conn.Close()
	client := sheetservice.NewClient(conn)
	ctx = sheetservice.WithLocale(ctx, cfg.Locale)

	characterID := strings.TrimSpace(cfg.Character)
	if characterID == "" {
		if characterID, err = client.CreateCharacter(ctx, remoteCharacterName); err != nil {
			return output{}, err
		}
	}
	fields := map[string]any{
		"character_id": characterID,
		"dice":         cfg.Dice,
		"keyword":      kw,
		"mode":         string(mode),
	}
	if seed != nil {
		fields["seed"] = strconv.FormatInt(*seed, 10)
	}
	resp, err := client.Call(ctx, sheetservice.MethodRoll, fields)
	if err != nil {
		return output{}, err
	}
	rec := resp.GetFields()["roll"].GetStructValue()
	rollID := rec.GetFields()["id"].GetStringValue()
	for _, index := range burns {
		resp, err = client.Call(ctx, sheetservice.MethodBurn, map[string]any{"roll_id": rollID, "index": index})
		if err != nil {
			return output{}, err
		}
		rec = resp.GetFields()["roll"].GetStructValue()
	}

	req, err := requestFromRoll(rec)
	if err != nil {
		return output{}, err
	}
	return describe(req, rec.GetFields()["seed"].GetStringValue(), cfg.Difficulty), nil
}

// requestFromRoll rebuilds the evaluation input from a roll message.
func requestFromRoll(rec *structpb.Struct) (roll.Request, error) {
	if rec == nil {
		return roll.Request{}, errors.New("roll response is empty")
	}
	fields := rec.GetFields()
	mode, err := roll.ParseMode(fields["mode"].GetStringValue())
	if err != nil {
		return roll.Request{}, err
	}
	req := roll.Request{
		Keyword:       fields["keyword"].GetStringValue(),
		Mode:          mode,
		RolledAllCrit: fields["rolled_all_crit"].GetBoolValue(),
	}
	for _, v := range fields["values"].GetListValue().GetValues() {
		req.Values = append(req.Values, int(v.GetNumberValue()))
	}
	for _, v := range fields["burned"].GetListValue().GetValues() {
		req.Burned = append(req.Burned, v.GetBoolValue())
	}
	if len(req.Burned) > 0 && len(req.Burned) != len(req.Values) {
		return roll.Request{}, fmt.Errorf("roll has %d values but %d burn flags", len(req.Values), len(req.Burned))
	}
	if locked, ok := fields["locked_index"]; ok {
		index := int(locked.GetNumberValue())
		req.Locked = &index
	}
	return req, nil
}
