package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/configurator"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/rpcclient"
)

const usage = `adminctl <command> [flags]

commands:
  login       -email -password          登录并保存 token
  logout                                清除本地 token
  doall       -table -action [-where JSON] [-data JSON] [-order-by] [-limit]
  upload      [-scene] file...          上传图片
  attributes  [-option ID]              查看属性目录，或按 id 查选项名
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfg := config.Load()
	client, err := newClient(cfg.Client)
	if err != nil {
		fail(err)
	}
	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := os.Args[2:]
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, client, args)
	case "logout":
		if err = client.Logout(); err == nil {
			printSessionPath(os.Stdout, client, "session cleared")
		}
	case "doall":
		err = runDoAll(ctx, client, args, os.Stdout)
	case "upload":
		err = runUpload(ctx, client, args, os.Stdout)
	case "attributes":
		err = runAttributes(ctx, client, args, os.Stdout)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

func newClient(cfg config.ClientConfig) (*rpcclient.Client, error) {
	if strings.TrimSpace(cfg.TokenFile) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".gemdesk", "session.json")
	}
	return rpcclient.NewFromConfig(cfg)
}

func runLogin(ctx context.Context, client *rpcclient.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "登录邮箱")
	password := fs.String("password", os.Getenv("GD_ADMIN_PASSWORD"), "登录密码（默认读取 GD_ADMIN_PASSWORD）")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}
	result, err := client.Login(ctx, rpcclient.LoginInput{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("logged in, token expires at %s\n", result.ExpiresAt)
	printSessionPath(os.Stdout, client, "session saved")
	return nil
}

// printSessionPath 文件存储时提示登录态所在位置
func printSessionPath(out io.Writer, client *rpcclient.Client, what string) {
	if store, ok := client.Store().(*rpcclient.FileTokenStore); ok {
		fmt.Fprintf(out, "%s: %s\n", what, store.Path())
	}
}

func runAttributes(ctx context.Context, client *rpcclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("attributes", flag.ContinueOnError)
	optionID := fs.Uint("option", 0, "按选项 id 查询名称")
	if err := fs.Parse(args); err != nil {
		return err
	}
	catalog, err := configurator.NewRPCBackend(client).AttributeCatalog(ctx)
	if err != nil {
		return err
	}
	if *optionID == 0 {
		return printJSON(out, catalog)
	}
	id := uint(*optionID)
	found := false
	for _, family := range []configurator.AttributeFamily{catalog.Metal, catalog.Diamond, catalog.Size} {
		if name, ok := family.OptionName(id); ok {
			fmt.Fprintf(out, "%s\t%d\t%s\n", family.Type, id, name)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("option %d not found", id)
	}
	return nil
}

func runDoAll(ctx context.Context, client *rpcclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("doall", flag.ContinueOnError)
	table := fs.String("table", "", "表名")
	action := fs.String("action", constants.RPCActionGet, "get / insert / update / delete / soft_delete")
	where := fs.String("where", "", "where 条件 JSON")
	data := fs.String("data", "", "写入数据 JSON")
	orderBy := fs.String("order-by", "", "排序，如 \"id DESC\"")
	limit := fs.Int("limit", 0, "返回行数上限")
	if err := fs.Parse(args); err != nil {
		return err
	}
	params := rpcclient.Params{
		Action:  *action,
		Table:   *table,
		OrderBy: *orderBy,
		Limit:   *limit,
	}
	var err error
	if params.Where, err = decodeObject("where", *where); err != nil {
		return err
	}
	if params.Data, err = decodeObject("data", *data); err != nil {
		return err
	}
	result, err := client.DoAll(ctx, params)
	if err != nil {
		return err
	}
	return printJSON(out, result)
}

func runUpload(ctx context.Context, client *rpcclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	scene := fs.String("scene", constants.UploadSceneCommon, "上传场景")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files := make([]rpcclient.UploadFile, 0, fs.NArg())
	for _, path := range fs.Args() {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		files = append(files, rpcclient.UploadFile{Name: path, Content: file})
	}
	paths, err := client.UploadImages(ctx, *scene, files)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintln(out, path)
	}
	return nil
}

func decodeObject(name, raw string) (map[string]interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var value map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("invalid %s JSON: %w", name, err)
	}
	return value, nil
}

func printJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func fail(err error) {
	var remote *rpcclient.RemoteError
	switch {
	case errors.Is(err, rpcclient.ErrUnauthorized):
		fmt.Fprintln(os.Stderr, "unauthorized, run `adminctl login` first")
	case errors.As(err, &remote):
		fmt.Fprintln(os.Stderr, remote.Error())
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
